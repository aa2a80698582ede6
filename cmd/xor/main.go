package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/FlavioCFOliveira/GoBrain/gobrain"
)

func main() {
	fmt.Println("=== XOR Training Example ===")

	// XOR cannot be solved by a single-layer perceptron, so use two hidden
	// layers: 2 inputs -> 4 -> 3 -> 1 output
	network, err := gobrain.New(gobrain.Config{
		Sizes:        []int{2, 4, 3, 1},
		LearningRate: 0.6,
		Momentum:     0.5,
		Seed:         42,
	})
	if err != nil {
		log.Fatal(err)
	}

	data := []gobrain.Sample{
		{Input: []float64{0, 0}, Output: []float64{0}},
		{Input: []float64{0, 1}, Output: []float64{1}},
		{Input: []float64{1, 0}, Output: []float64{1}},
		{Input: []float64{1, 1}, Output: []float64{0}},
	}

	// An identical copy trains asynchronously from the same weights
	twin := network.Clone()

	res, err := network.Train(data, gobrain.Options{
		"errorThresh": 0.01,
		"log":         true,
		"logPeriod":   1000,
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Sync:  %s after %d iterations, error %.6f\n", res.State, res.Iterations, res.Error)

	twinRes, err := twin.TrainAsync(context.Background(), data, gobrain.Options{"errorThresh": 0.01}).Wait()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Async: %s after %d iterations, error %.6f\n", twinRes.State, twinRes.Iterations, twinRes.Error)

	fmt.Println()
	network.Summary(os.Stdout)

	fmt.Println("\nTesting trained network:")
	for _, s := range data {
		pred, err := network.Run(s.Input)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Input: %v, Predicted: %.4f, Target: %v\n", s.Input, pred[0], s.Output[0])
	}

	if res == twinRes {
		fmt.Println("\nSUCCESS: sync and async runs produced the same result!")
	} else {
		fmt.Println("\nFAILURE: sync and async runs differ!")
	}
}
