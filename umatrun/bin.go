package main

import (
	"fmt"
	"log"
	"os"

	. "github.com/ZenLiuCN/umat"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := cli.NewApp()
	app.Usage = "UMAT kernel harness"
	app.Name = "umatrun"
	app.Description = "load a UMAT shared artifact, invoke its entry point once and print the strain, tangent and stress"
	app.Action = run
	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}},
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "umat.yaml", Usage: "scenario file, defaults apply when it is missing"},
		&cli.StringFlag{Name: "artifact", Aliases: []string{"a"}, Usage: "shared artifact path, overrides the scenario"},
		&cli.StringFlag{Name: "symbol", Aliases: []string{"s"}, Usage: "decorated entry point name, overrides the scenario"},
	}
	app.Before = setup
	app.After = func(ctx *cli.Context) error {
		_ = zap.L().Sync()
		return nil
	}
	app.Commands = []*cli.Command{
		{Name: "symbols",
			Action:    symbols,
			Usage:     "display exported functions of a shared artifact",
			ArgsUsage: "artifact...",
		},
		{Name: "build",
			Action: build,
			Usage:  "compile kernel sources into a shared artifact",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "libumat.so", Usage: "artifact path"},
				&cli.StringFlag{Name: "compiler", Usage: "compiler, chosen by source extension when empty"},
			},
			ArgsUsage: "source...",
		},
		{Name: "init",
			Action:    initial,
			Usage:     "write the default scenario to the config path",
			ArgsUsage: " ",
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("failure %s", err)
	}
}

func setup(ctx *cli.Context) error {
	l, err := NewLogger(ctx.Bool("debug"))
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(l)
	UseLogger(l)
	return nil
}

func run(ctx *cli.Context) error {
	s, err := LoadScenario(ctx.String("config"))
	if err != nil {
		return err
	}
	if v := ctx.String("artifact"); v != "" {
		s.Artifact = v
	}
	if v := ctx.String("symbol"); v != "" {
		s.Symbol = v
	}
	s.Debug = s.Debug || ctx.Bool("debug")
	if _, err = Run(*s, ctx.App.Writer); err != nil {
		return cli.Exit(fmt.Sprintf("umat: %s", err), 1)
	}
	return nil
}

func symbols(ctx *cli.Context) (err error) {
	if ctx.NArg() == 0 {
		return fmt.Errorf("missing artifact")
	}
	for _, s := range ctx.Args().Slice() {
		var v []string
		if v, err = Inspect(s); err != nil {
			return
		}
		fmt.Fprintf(ctx.App.Writer, "%s:\n", s)
		for _, n := range v {
			fmt.Fprintf(ctx.App.Writer, "\t%s\n", n)
		}
	}
	return
}

func build(ctx *cli.Context) error {
	src := ctx.Args().Slice()
	if len(src) == 0 {
		return fmt.Errorf("missing kernel sources")
	}
	if err := BuildArtifact(ctx.Bool("debug"), ctx.String("compiler"), ctx.String("out"), src...); err != nil {
		return err
	}
	zap.L().Info("artifact built", zap.String("out", ctx.String("out")))
	return nil
}

func initial(ctx *cli.Context) error {
	s := DefaultScenario()
	return s.Save(ctx.String("config"))
}
