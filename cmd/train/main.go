package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/klauspost/cpuid/v2"
	"github.com/pkg/errors"
)

type Config struct {
	dataPath    string
	optionsPath string
	labelCols   string
	header      bool
	normalize   bool
	hidden      string
	networks    int
	threads     int
	seed        int64
	split       float64
	csvLogDir   string
}

var config Config

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	flag.StringVar(&config.dataPath, "data", "", "Path to training set (.csv or .json)")
	flag.StringVar(&config.optionsPath, "opts", "", "Path to JSON training options")
	flag.StringVar(&config.labelCols, "labels", "", "Comma separated CSV label columns")
	flag.BoolVar(&config.header, "header", false, "CSV has a header line")
	flag.BoolVar(&config.normalize, "normalize", false, "Min-max normalize inputs")
	flag.StringVar(&config.hidden, "hidden", "", "Comma separated hidden layer sizes")
	flag.IntVar(&config.networks, "n", 1, "Number of networks to train")
	flag.IntVar(&config.threads, "threads", cpuid.CPU.LogicalCores, "Number of concurrent trainings")
	flag.Int64Var(&config.seed, "seed", 1, "Seed of the first network")
	flag.Float64Var(&config.split, "split", 1, "Share of the data used for training")
	flag.StringVar(&config.csvLogDir, "csvlog", "", "Directory for per-network CSV progress logs")
	flag.Parse()

	log.Printf("%+v", config)
	if err := config.validate(); err != nil {
		log.Fatal(err)
	}
	log.Println("CPU", cpuid.CPU.BrandName, "LogicalCores", cpuid.CPU.LogicalCores)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func (c Config) validate() error {
	if c.dataPath == "" {
		return errors.New("-data is required")
	}
	if c.networks < 1 {
		return errors.Errorf("-n must be at least 1, got %d", c.networks)
	}
	if c.split <= 0 || c.split > 1 {
		return errors.Errorf("-split must be in (0, 1], got %v", c.split)
	}
	return nil
}

func parseInts(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var res []int
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}
