// Command explore-layer synthesizes every candidate implementation of one
// CNN layer and reports their latencies and resource costs.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/tebeka/atexit"

	"github.com/scale-cnn/explorer/explore"
	"github.com/scale-cnn/explorer/layer"
)

var (
	layerFile = flag.String("layer", "",
		"YAML file describing the layer to explore")
	listFile = flag.String("list", "",
		"file listing the implementations to explore, one JSON object per line")
	quiet = flag.Bool("quiet", false,
		"disable the progress bar")
)

func main() {
	flag.Parse()
	if *layerFile == "" || *listFile == "" {
		flag.Usage()
		atexit.Exit(1)
	}

	spec, err := layer.LoadSpec(*layerFile)
	if err != nil {
		log.Print(err)
		atexit.Exit(1)
	}

	explorer := &explore.Explorer{
		Synth:    explore.VitisHLS{},
		Progress: !*quiet,
	}
	if err := explorer.Run(context.Background(), spec, *listFile); err != nil {
		log.Print(err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
