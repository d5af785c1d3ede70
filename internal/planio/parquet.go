package planio

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/parquet-go/parquet-go"
)

// WriteParquet writes records as a parquet file.
func WriteParquet(w io.Writer, records []Record) error {
	writer := parquet.NewGenericWriter[Record](w)
	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// ReadParquet reads records written by WriteParquet.
func ReadParquet(r io.ReaderAt, size int64) ([]Record, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[Record](pf)
	defer reader.Close()

	records := make([]Record, 0, pf.NumRows())
	rows := make([]Record, 128)
	for {
		n, err := reader.Read(rows)
		records = append(records, rows[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}
	return records, nil
}

// ReadParquetFile reads the records of a parquet file on disk.
func ReadParquetFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	return ReadParquet(file, info.Size())
}
