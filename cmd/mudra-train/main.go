// Command mudra-train builds a classifier model artifact from recorded
// training samples.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ayusman/mudra/internal/classify"
)

func main() {
	samplesPath := flag.String("samples", "", "path to the JSON samples file (required)")
	outPath := flag.String("out", "model.json", "output model artifact path")
	modelType := flag.String("type", classify.ModelKNN, "model type: knn or centroid")
	k := flag.Int("k", 5, "number of neighbors for knn models")
	flag.Parse()

	if *samplesPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	samples, err := classify.ReadSamples(*samplesPath)
	if err != nil {
		log.Fatalf("Failed to read samples: %v", err)
	}

	labels := make(map[string]int)
	for _, s := range samples {
		labels[s.Label]++
	}
	fmt.Printf("Loaded %d samples across %d labels\n", len(samples), len(labels))

	var art *classify.Artifact
	switch *modelType {
	case classify.ModelKNN:
		art, err = classify.BuildKNNArtifact(samples, *k)
	case classify.ModelCentroid:
		art, err = classify.BuildCentroidArtifact(samples)
	default:
		log.Fatalf("Unknown model type %q", *modelType)
	}
	if err != nil {
		log.Fatalf("Failed to build model: %v", err)
	}

	if err := art.Write(*outPath); err != nil {
		log.Fatalf("Failed to write model: %v", err)
	}

	fmt.Printf("Wrote %s model with %d vectors to %s\n", art.Type, len(art.Vectors), *outPath)
}
