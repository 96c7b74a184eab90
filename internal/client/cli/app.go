package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mihailvs/docshare/internal/client/api"
)

// App is the interactive client. Commands run against one API client whose
// bearer token lives for the duration of the session.
type App struct {
	client *api.Client
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(client *api.Client, in io.Reader, out io.Writer) *App {
	return &App{
		client: client,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

const helpText = `Commands:
  register            create an account
  login               log in and keep the session token
  upload <file ...>   upload one or more files (requires login)
  list                show the shared document list
  download <id>       print a signed download link
  logout              forget the session token
  help                show this help
  quit                exit
`

// Run reads commands until quit or EOF.
func (a *App) Run(ctx context.Context) {

	fmt.Fprint(a.out, helpText)

	for {
		line, err := GetSimpleText(a.reader, "", a.out)
		if err != nil {
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "quit" || fields[0] == "exit" {
			return
		}

		if err := a.Dispatch(ctx, fields[0], fields[1:]); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}
}

// Dispatch runs a single command with its arguments.
func (a *App) Dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return a.register(ctx)
	case "login":
		return a.login(ctx)
	case "upload":
		return a.upload(ctx, args)
	case "list":
		return a.list(ctx)
	case "download":
		return a.download(ctx, args)
	case "logout":
		a.client.Logout()
		fmt.Fprintln(a.out, "Logged out")
		return nil
	case "help":
		fmt.Fprint(a.out, helpText)
		return nil
	default:
		return fmt.Errorf("unknown command %q, try help", command)
	}
}

func (a *App) register(ctx context.Context) error {

	username, err := GetSimpleText(a.reader, "Username:", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email:", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.client.Register(ctx, username, password, email); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registered")
	return nil
}

func (a *App) login(ctx context.Context) error {

	username, err := GetSimpleText(a.reader, "Username:", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.client.Login(ctx, username, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Logged in")
	return nil
}

func (a *App) upload(ctx context.Context, paths []string) error {

	if len(paths) == 0 {
		return fmt.Errorf("usage: upload <file ...>")
	}
	if !a.client.IsLoggedIn() {
		return fmt.Errorf("login first")
	}

	title, err := GetSimpleText(a.reader, "Title (empty = filename):", a.out)
	if err != nil {
		return err
	}
	description, err := GetSimpleText(a.reader, "Description:", a.out)
	if err != nil {
		return err
	}
	category, err := GetSimpleText(a.reader, "Category:", a.out)
	if err != nil {
		return err
	}

	if err := a.client.Upload(ctx, title, description, category, paths); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Uploaded %d file(s)\n", len(paths))
	return nil
}

func (a *App) list(ctx context.Context) error {

	docs, err := a.client.ListDocuments(ctx)
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(a.out, "No documents")
		return nil
	}

	for _, d := range docs {
		fmt.Fprintf(a.out, "%s  %-30s  %-12s  by %s  (downloads: %d)\n",
			d.ID, d.Title, d.Category, d.Uploader, d.Downloads)
	}
	return nil
}

func (a *App) download(ctx context.Context, args []string) error {

	if len(args) != 1 {
		return fmt.Errorf("usage: download <id>")
	}

	url, err := a.client.DownloadURL(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, url)
	return nil
}
