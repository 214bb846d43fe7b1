// Package cmd implements the CLI application to query and maintain a ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/folioz/folio"
	"github.com/google/subcommands"
)

// Commands lists every subcommand the binary registers.
var Commands = []subcommands.Command{
	&holdingsCmd{},
	&cashCmd{},
	&issuesCmd{},
	&fmtCmd{},
	&buyCmd{},
	&sellCmd{},
	&depositCmd{},
	&withdrawCmd{},
	&dividendCmd{},
	&splitCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "ledger.jsonl", "Path to the ledger file containing records (JSONL format)")
var assetsFile = flag.String("assets-file", "assets.jsonl", "Path to the asset registry file (JSONL format)")

// DecodeLedgerFile loads the app ledger file.
func DecodeLedgerFile() (*folio.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, ledger file does not exist, starting from an empty ledger")
		return folio.NewLedger(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return folio.DecodeLedger(f)
}

// DecodeRegistryFile loads the app asset registry file.
func DecodeRegistryFile() (folio.Registry, error) {
	f, err := os.Open(*assetsFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, assets file does not exist, starting from an empty registry")
		return folio.NewRegistry(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return folio.DecodeRegistry(f)
}

// AppendRecord appends a single record to the app ledger file.
func AppendRecord(rec folio.Record) subcommands.ExitStatus {
	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := folio.EncodeRecord(f, rec); err != nil {
		fmt.Fprintf(os.Stderr, "Error appending record: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Appended %s record %s\n", rec.Kind, rec.ID)
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown for the terminal and prints it.
func printMarkdown(markdown string) {
	out, err := glamour.Render(markdown, "auto")
	if err != nil {
		// fall back to the raw markdown.
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}
