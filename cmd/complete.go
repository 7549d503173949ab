package cmd

import (
	"flag"

	"github.com/etnz/wts/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete handles the shell completion requests of the application named name.
// It exits the program when the shell is asking for completions, and
// installs the completion script when COMP_INSTALL=1.
func Complete(name string) {
	sub := make(map[string]*complete.Command)
	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		flags := make(map[string]complete.Predictor)
		fs.VisitAll(func(f *flag.Flag) { flags[f.Name] = predictFlag(f) })
		sub[c.Name()] = &complete.Command{Flags: flags}
	}
	if topics, err := docs.GetAllTopics(); err == nil {
		sub["topic"].Args = predict.Set(append(topics, "readme", "*"))
	}

	root := &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
			"v":      predict.Nothing,
		},
	}
	root.Complete(name)
}

// predictFlag returns the predictor of a subcommand flag.
func predictFlag(f *flag.Flag) complete.Predictor {
	switch f.Name {
	case "raw-dir", "processed-dir", "charts-dir":
		return predict.Dirs("*")
	case "metrics-file":
		return predict.Files("*.prom")
	case "i":
		return predict.Files("*.csv")
	case "o":
		return predict.Files("*.xlsx")
	}
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	return predict.Something
}
