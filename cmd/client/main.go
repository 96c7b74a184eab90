package main

import (
	"context"
	"flag"
	"os"

	"github.com/mihailvs/docshare/internal/client/api"
	"github.com/mihailvs/docshare/internal/client/cli"
)

func main() {

	endpoint := flag.String("e", "http://127.0.0.1:8080", "server endpoint")
	flag.Parse()

	client := api.NewClient(*endpoint)
	app := cli.NewApp(client, os.Stdin, os.Stdout)

	app.Run(context.Background())
}
