// Package main provides the micrograd CLI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/micrograd/internal/draw"
	"github.com/born-ml/micrograd/internal/engine"
	"github.com/born-ml/micrograd/internal/nn"
	"github.com/born-ml/micrograd/internal/optim"
	"github.com/born-ml/micrograd/internal/train"
)

const version = "v0.1.0"

var errUsage = errors.New("usage")

// The classic four-sample binary classification set.
var (
	demoXs = [][]float64{
		{2.0, 3.0, -1.0},
		{3.0, -1.0, 0.5},
		{0.5, 1.0, 1.0},
		{1.0, 1.0, -1.0},
	}
	demoYs = [][]float64{{1.0}, {-1.0}, {-1.0}, {1.0}}
)

func main() {
	logger := log.New(os.Stderr, "micrograd: ", 0)

	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		logger.Fatalf("%v", err)
	}
}

func run(args []string, stdout io.Writer, logger *log.Logger) error {
	if len(args) == 0 {
		usage(stdout)
		return errUsage
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "micrograd %s\n", version)
		return nil
	case "train":
		return runTrain(args[1:], stdout, logger)
	case "grad":
		return runGrad(args[1:], stdout)
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		usage(stdout)
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "micrograd - scalar autodiff and a tiny MLP")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  train      Train an MLP on the four-sample demo set")
	fmt.Fprintln(w, "  grad       Backpropagate through a single tanh neuron")
}

func runTrain(args []string, stdout io.Writer, logger *log.Logger) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(stdout)
	epochs := fs.Int("epochs", 100, "Number of training epochs")
	lr := fs.Float64("lr", 0.05, "Learning rate for SGD")
	momentum := fs.Float64("momentum", 0, "SGD momentum")
	hidden := fs.String("hidden", "4,4", "Comma-separated hidden layer sizes")
	seed := fs.Int64("seed", 1, "Weight initialization seed")
	every := fs.Int("every", 50, "Log the loss every N epochs")
	dotPath := fs.String("dot", "", "Write the final loss graph as DOT to this file")
	rankDir := fs.String("rankdir", draw.RankLR, "DOT rank direction (LR or TB)")
	savePath := fs.String("save", "", "Save the trained parameters to this file")
	configPath := fs.String("config", "", "YAML file with training settings; explicit flags win")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sizes, err := parseSizes(*hidden)
	if err != nil {
		return err
	}
	cfg := trainConfig{
		Epochs:   *epochs,
		LR:       *lr,
		Momentum: *momentum,
		Hidden:   sizes,
		Seed:     *seed,
		Every:    *every,
		RankDir:  *rankDir,
	}
	if *configPath != "" {
		file, err := loadTrainConfig(*configPath)
		if err != nil {
			return err
		}
		cfg.merge(file, fs)
	}

	//nolint:gosec // G404: weight initialization is not security-critical
	model := nn.NewMLP(len(demoXs[0]), cfg.Hidden, len(demoYs[0]), nn.Config{Rand: rand.New(rand.NewSource(cfg.Seed))})
	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: cfg.LR, Momentum: cfg.Momentum})
	trainer := train.NewTrainer(model, optimizer, train.Config{
		Epochs:   cfg.Epochs,
		LogEvery: cfg.Every,
		Logger:   logger,
	})

	fmt.Fprintf(stdout, "MLP %v, %d parameters, SGD lr=%g momentum=%g\n",
		model.Sizes(), len(model.Parameters()), cfg.LR, cfg.Momentum)

	history, err := trainer.Fit(demoXs, demoYs)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}
	final := history[len(history)-1]
	fmt.Fprintf(stdout, "final loss %.6f after %d epochs\n", final.Loss, len(history))

	preds, err := model.ForwardBatch(demoXs)
	if err != nil {
		return err
	}
	for i, p := range preds {
		fmt.Fprintf(stdout, "  x=%v y=%v pred=%.4f\n", demoXs[i], demoYs[i][0], p[0].Data())
	}

	if *dotPath != "" {
		loss, err := trainer.Loss(demoXs, demoYs)
		if err != nil {
			return err
		}
		loss.SetLabel("loss")
		optimizer.ZeroGrad()
		loss.Backward()
		if err := writeDOT(*dotPath, loss, draw.Options{RankDir: cfg.RankDir}); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote loss graph to %s\n", *dotPath)
	}

	if *savePath != "" {
		meta := map[string]string{
			"hidden": fmt.Sprint(cfg.Hidden),
			"seed":   strconv.FormatInt(cfg.Seed, 10),
		}
		ckpt := &nn.Checkpoint{
			Model:     model,
			Optimizer: optimizer,
			Epoch:     final.Epoch,
			Step:      int64(len(history)),
			Loss:      final.Loss,
			Metadata:  meta,
		}
		if err := ckpt.Save(*savePath); err != nil {
			return fmt.Errorf("save checkpoint: %w", err)
		}
		fmt.Fprintf(stdout, "saved parameters to %s\n", *savePath)
	}

	return nil
}

// runGrad backpropagates through o = tanh(x1*w1 + x2*w2 + b) and prints
// every node.
func runGrad(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("grad", flag.ContinueOnError)
	fs.SetOutput(stdout)
	dotPath := fs.String("dot", "", "Write the graph as DOT to this file")
	rankDir := fs.String("rankdir", draw.RankLR, "DOT rank direction (LR or TB)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	x1 := engine.NewLabeled(2, "x1")
	x2 := engine.NewLabeled(0, "x2")
	w1 := engine.NewLabeled(-3, "w1")
	w2 := engine.NewLabeled(1, "w2")
	b := engine.NewLabeled(6.8813735870195432, "b")

	x1w1 := x1.Mul(w1).SetLabel("x1*w1")
	x2w2 := x2.Mul(w2).SetLabel("x2*w2")
	n := engine.Sum(b, x1w1, x2w2).SetLabel("n")
	o := n.Tanh().SetLabel("o")
	o.Backward()

	for _, v := range o.Topo() {
		label := v.Label()
		if label == "" {
			label = "_"
		}
		op := v.Op().String()
		if op == "" {
			op = "leaf"
		}
		fmt.Fprintf(stdout, "%-8s %-5s data=% .6f grad=% .6f\n", label, op, v.Data(), v.Grad())
	}

	if err := engine.CheckFinite(o); err != nil {
		return err
	}

	if *dotPath != "" {
		return writeDOT(*dotPath, o, draw.Options{RankDir: *rankDir})
	}
	return nil
}

func writeDOT(path string, root *engine.Value, opts draw.Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return draw.WriteDOT(f, root, opts)
}

func parseSizes(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	sizes := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid hidden layer size %q", p)
		}
		sizes[i] = n
	}
	return sizes, nil
}
