package folio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeLedger decodes ledger records from a stream of JSONL data, one record
// per line, and returns them as a sorted Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(lineBytes, &rec); err != nil {
			return nil, fmt.Errorf("could not decode record on line %d: %w", line, err)
		}
		ledger.Append(rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read ledger: %w", err)
	}
	return ledger, nil
}

// EncodeLedger writes the ledger as JSONL in display order, the canonical
// form the fmt command produces.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for _, rec := range l.Records() {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("could not encode record %q: %w", rec.ID, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return err
		}
	}
	return nil
}

// EncodeRecord appends a single record line to the writer.
func EncodeRecord(w io.Writer, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("could not encode record %q: %w", rec.ID, err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// DecodeRegistry decodes assets from a stream of JSONL data, one asset per
// line, indexed by id.
func DecodeRegistry(r io.Reader) (Registry, error) {
	registry := NewRegistry()
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}

		var a Asset
		if err := json.Unmarshal(lineBytes, &a); err != nil {
			return nil, fmt.Errorf("could not decode asset on line %d: %w", line, err)
		}
		if a.ID == "" {
			return nil, fmt.Errorf("asset on line %d has no id", line)
		}
		registry.Add(a)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read registry: %w", err)
	}
	return registry, nil
}

// EncodeRegistry writes the registry as JSONL, sorted by ticker for a stable
// output.
func EncodeRegistry(w io.Writer, registry Registry) error {
	assets := make([]Asset, 0, len(registry))
	for _, a := range registry {
		assets = append(assets, a)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Ticker < assets[j].Ticker })
	for _, a := range assets {
		data, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("could not encode asset %q: %w", a.ID, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return err
		}
	}
	return nil
}

