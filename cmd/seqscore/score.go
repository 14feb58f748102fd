// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/born-ml/seqscore/backend/cpu"
	"github.com/born-ml/seqscore/backend/webgpu"
	"github.com/born-ml/seqscore/internal/logging"
	"github.com/born-ml/seqscore/score"
	"github.com/born-ml/seqscore/tensor"
)

func scoreCmd() *cli.Command {
	return &cli.Command{
		Name:  "score",
		Usage: "Score parallel source/target text",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "YAML config file"},
			&cli.StringFlag{Name: "source", Aliases: []string{"s"}, Usage: "source text file, - for stdin", Required: true},
			&cli.StringFlag{Name: "target", Aliases: []string{"t"}, Usage: "target text file", Required: true},
			&cli.StringFlag{Name: "source-vocab", Usage: "source vocabulary (JSON)"},
			&cli.StringFlag{Name: "target-vocab", Usage: "target vocabulary (JSON)"},
			&cli.IntFlag{Name: "batch-size", Value: 64, Usage: "sentence pairs per batch"},
			&cli.StringFlag{Name: "device", Value: "cpu", Usage: "compute device: cpu or webgpu"},
			&cli.StringFlag{Name: "dtype", Value: "float32", Usage: "model precision: float32 or float64"},
			&cli.StringFlag{Name: "score-type", Value: string(score.NegLogProb), Usage: "neglogprob or logprob"},
			&cli.FloatFlag{Name: "softmax-temperature", Usage: "softmax temperature, 0 disables scaling"},
			&cli.FloatFlag{Name: "length-penalty-alpha", Value: 1.0, Usage: "length penalty exponent"},
			&cli.FloatFlag{Name: "length-penalty-beta", Value: 0.0, Usage: "length penalty bias"},
			&cli.FloatFlag{Name: "brevity-penalty-weight", Value: 0.0, Usage: "brevity penalty weight, 0 disables"},
			&cli.FloatFlag{Name: "constant-length-ratio", Value: 0.0, Usage: "constant target/source length ratio for the brevity penalty"},
			&cli.StringFlag{Name: "output-type", Value: "pair", Usage: "score, pair or json"},
			&cli.StringFlag{Name: "log-level", Value: logging.LevelInfo, Usage: "debug, info, warn or error"},
		},
		Action: runScore,
	}
}

func runScore(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadFileConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	applyFileConfig(cmd, cfg)

	logger := logging.New(cmd.String("log-level"))
	defer func() { _ = logger.Sync() }()

	sourceVocabPath := cmd.String("source-vocab")
	targetVocabPath := cmd.String("target-vocab")
	if sourceVocabPath == "" || targetVocabPath == "" {
		return fmt.Errorf("source and target vocabularies are required")
	}

	sourceVocab, err := score.LoadVocab(sourceVocabPath)
	if err != nil {
		return err
	}
	targetVocab, err := score.LoadVocab(targetVocabPath)
	if err != nil {
		return err
	}

	device := tensor.CPU
	var backend tensor.Backend
	switch cmd.String("device") {
	case "cpu":
		backend = cpu.New()
	case "webgpu":
		gpu, err := webgpu.New()
		if err != nil {
			logger.Warnf("WebGPU unavailable (%v), falling back to CPU", err)
			backend = cpu.New()
		} else {
			backend = gpu
			device = tensor.WebGPU
		}
	default:
		return fmt.Errorf("unknown device %q", cmd.String("device"))
	}

	dtype, ok := tensor.ParseDataType(cmd.String("dtype"))
	if !ok {
		return fmt.Errorf("unknown dtype %q", cmd.String("dtype"))
	}

	m, err := score.NewUniformModel(len(targetVocab), dtype, device)
	if err != nil {
		return err
	}

	scorer, err := score.NewScorer(m, []tensor.Backend{backend}, sourceVocab, targetVocab,
		score.Config{
			ScoreType:            score.ScoreType(cmd.String("score-type")),
			Temperature:          cmd.Float("softmax-temperature"),
			LengthPenaltyAlpha:   cmd.Float("length-penalty-alpha"),
			LengthPenaltyBeta:    cmd.Float("length-penalty-beta"),
			BrevityPenaltyWeight: cmd.Float("brevity-penalty-weight"),
			ConstantLengthRatio:  cmd.Float("constant-length-ratio"),
		}, logger)
	if err != nil {
		return err
	}
	defer scorer.Close()

	src, err := openInput(cmd.String("source"))
	if err != nil {
		return err
	}
	defer src.Close()

	tgt, err := openInput(cmd.String("target"))
	if err != nil {
		return err
	}
	defer tgt.Close()

	iter, err := score.NewPairReader(src, tgt, sourceVocab, targetVocab,
		int(cmd.Int("batch-size")), device)
	if err != nil {
		return err
	}

	handler, err := newHandler(cmd.String("output-type"), os.Stdout)
	if err != nil {
		return err
	}

	_, err = scorer.Score(iter, handler)
	return err
}

// applyFileConfig fills in file values for flags the user did not set.
func applyFileConfig(cmd *cli.Command, cfg fileConfig) {
	set := func(name, value string) {
		if value != "" && !cmd.IsSet(name) {
			_ = cmd.Set(name, value)
		}
	}
	set("source-vocab", cfg.SourceVocab)
	set("target-vocab", cfg.TargetVocab)
	set("device", cfg.Device)
	set("dtype", cfg.DType)
	set("score-type", cfg.ScoreType)
	set("output-type", cfg.OutputType)
	set("log-level", cfg.LogLevel)

	if cfg.BatchSize != nil && !cmd.IsSet("batch-size") {
		_ = cmd.Set("batch-size", fmt.Sprint(*cfg.BatchSize))
	}
	setFloat := func(name string, value *float64) {
		if value != nil && !cmd.IsSet(name) {
			_ = cmd.Set(name, fmt.Sprint(*value))
		}
	}
	setFloat("softmax-temperature", cfg.SoftmaxTemperature)
	setFloat("length-penalty-alpha", cfg.LengthPenaltyAlpha)
	setFloat("length-penalty-beta", cfg.LengthPenaltyBeta)
	setFloat("brevity-penalty-weight", cfg.BrevityPenaltyWeight)
	setFloat("constant-length-ratio", cfg.ConstantLengthRatio)
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

func newHandler(outputType string, w io.Writer) (score.Handler, error) {
	switch outputType {
	case "score":
		return score.NewScoreWriter(w), nil
	case "pair":
		return score.NewPairWriter(w), nil
	case "json":
		return score.NewJSONWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown output type %q", outputType)
	}
}
