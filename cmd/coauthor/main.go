package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "run":
		err = runCommand(ctx, args)
	case "query":
		err = queryCommand(ctx, args)
	case "browse":
		err = browseCommand(ctx, args)
	case "help", "--help", "-h":
		printUsage()
	case "version", "--version", "-v":
		fmt.Printf("coauthor v%s\n", version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func printUsage() {
	usage := `coauthor - co-authorship network analysis of a citation export

Usage:
  coauthor <command> [options]

Available Commands:
  run         Load the articles, analyse the network, render charts and print the report
  query       Run a GraphQL query against a saved snapshot
  browse      Explore a saved snapshot in the terminal
  help        Show this help message
  version     Show version information

Examples:
  # Analyse PoPCites.csv with the defaults, writing charts to ./out
  coauthor run

  # Use a config file and another input
  coauthor run -config coauthor.yaml -input scopus.csv

  # Top authors by betweenness from the last run
  coauthor query '{ authors(limit: 5) { name betweenness } }'

  # Interactive browser
  coauthor browse -snapshot out/snapshot.json

Use "coauthor <command> -h" for the options of a command.
`
	fmt.Print(usage)
}
