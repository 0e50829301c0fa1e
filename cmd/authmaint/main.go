package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dmitrijs2005/authmaint/internal/app"
	"github.com/dmitrijs2005/authmaint/internal/common"
	"github.com/dmitrijs2005/authmaint/internal/config"
)

// commandArgs returns the leading non-flag arguments: the command word and
// its positional arguments. Flags are handled by the config package.
func commandArgs(args []string) []string {
	var out []string
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			break
		}
		out = append(out, a)
	}
	return out
}

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("config error: %v", err)
		os.Exit(1)
	}

	a, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(ctx, commandArgs(os.Args[1:])); err != nil {
		if errors.Is(err, common.ErrorAborted) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		log.Printf("%v", err)
		os.Exit(1)
	}
}
