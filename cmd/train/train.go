package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/FlavioCFOliveira/GoBrain/gobrain"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type trainResult struct {
	seed     int64
	result   gobrain.Result
	testLoss float64
}

func run(ctx context.Context) error {
	data, err := loadData()
	if err != nil {
		return err
	}
	if config.normalize {
		gobrain.Normalize(data)
	}
	training, validation := gobrain.Split(data, config.split)
	if len(validation) == 0 {
		validation = training
	}
	log.Println("Loaded", len(training), "training and", len(validation), "validation samples")

	opts, err := loadOptions()
	if err != nil {
		return err
	}
	hidden, err := parseInts(config.hidden)
	if err != nil {
		return errors.Wrap(err, "bad -hidden")
	}

	runID := uuid.New()
	log.Println("run", runID)

	results := make([]trainResult, config.networks)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, config.threads))
	for i := range results {
		seed := config.seed + int64(i)
		g.Go(func() error {
			res, err := trainOne(ctx, runID, seed, hidden, training, validation, opts)
			if err != nil {
				return errors.Wrapf(err, "network %d", seed)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	best := results[0]
	for _, r := range results {
		log.Printf("seed %d: %s after %d iterations, train error %.6f, test error %.6f",
			r.seed, r.result.State, r.result.Iterations, r.result.Error, r.testLoss)
		if r.testLoss < best.testLoss {
			best = r
		}
	}
	log.Printf("best seed %d, test error %.6f", best.seed, best.testLoss)
	return nil
}

func trainOne(ctx context.Context, runID uuid.UUID, seed int64, hidden []int, training, validation []gobrain.Sample, opts gobrain.Options) (trainResult, error) {
	network, err := gobrain.New(gobrain.Config{HiddenLayers: hidden, Seed: seed})
	if err != nil {
		return trainResult{}, err
	}

	netOpts := gobrain.Options{}
	for k, v := range opts {
		netOpts[k] = v
	}
	if config.csvLogDir != "" {
		f, err := os.Create(filepath.Join(config.csvLogDir, fmt.Sprintf("progress_%s_%d.csv", runID, seed)))
		if err != nil {
			return trainResult{}, err
		}
		defer f.Close()
		netOpts["log"] = gobrain.NewCSVLogger(f).Log
	}

	res, err := network.TrainAsync(ctx, training, netOpts).Wait()
	if err != nil {
		return trainResult{}, err
	}
	testLoss, err := network.Test(validation)
	if err != nil {
		return trainResult{}, err
	}
	return trainResult{seed: seed, result: res, testLoss: testLoss}, nil
}

func loadData() ([]gobrain.Sample, error) {
	f, err := os.Open(config.dataPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(config.dataPath), ".json") {
		return gobrain.LoadJSON(f)
	}
	labels, err := parseInts(config.labelCols)
	if err != nil {
		return nil, errors.Wrap(err, "bad -labels")
	}
	return gobrain.LoadCSV(f, labels, config.header)
}

// loadOptions decodes the options file with numbers kept as json.Number.
func loadOptions() (gobrain.Options, error) {
	if config.optionsPath == "" {
		return gobrain.Options{}, nil
	}
	f, err := os.Open(config.optionsPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()
	var opts gobrain.Options
	if err := dec.Decode(&opts); err != nil {
		return nil, errors.Wrap(err, "failed to decode options")
	}
	return opts, nil
}
