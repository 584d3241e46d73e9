package xlgrid

import (
	"archive/zip"
	"io"

	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/models"
	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/parser"
)

// ReadSheet reads one sheet of the document at path. An empty sheetName
// selects the first sheet.
//
// On failure it returns an empty grid and a *CodecError; use errors.Is with
// ErrSheetNotFound to tell a missing sheet from a sheet without rows.
func ReadSheet(path, sheetName string) (models.Grid, error) {
	var grid models.Grid
	err := withPackage(path, func(zr *zip.Reader) error {
		var err error
		grid, err = parser.ReadSheet(zr, sheetName)
		return err
	})
	if err != nil {
		return models.Grid{}, NewCodecError(OpRead, path, sheetName, err)
	}
	return grid, nil
}

// ReadSheetFrom reads one sheet of a document held in r. name labels the
// source in errors.
func ReadSheetFrom(r io.ReaderAt, size int64, name, sheetName string) (models.Grid, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return models.Grid{}, NewCodecError(OpRead, name, sheetName, err)
	}
	grid, err := parser.ReadSheet(zr, sheetName)
	if err != nil {
		return models.Grid{}, NewCodecError(OpRead, name, sheetName, err)
	}
	return grid, nil
}

// ReadAllFrom reads every sheet of a document held in r.
func ReadAllFrom(r io.ReaderAt, size int64, name string) ([]models.Sheet, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, NewCodecError(OpRead, name, "", err)
	}
	sheets, err := parser.ReadAll(zr)
	if err != nil {
		return nil, NewCodecError(OpRead, name, "", err)
	}
	return sheets, nil
}

// ReadAll reads every sheet of the document at path in workbook order.
func ReadAll(path string) ([]models.Sheet, error) {
	var sheets []models.Sheet
	err := withPackage(path, func(zr *zip.Reader) error {
		var err error
		sheets, err = parser.ReadAll(zr)
		return err
	})
	if err != nil {
		return nil, NewCodecError(OpRead, path, "", err)
	}
	return sheets, nil
}

// ListSheets returns the sheet names of the document at path in workbook order.
func ListSheets(path string) ([]string, error) {
	var names []string
	err := withPackage(path, func(zr *zip.Reader) error {
		var err error
		names, err = parser.ListSheets(zr)
		return err
	})
	if err != nil {
		return nil, NewCodecError(OpRead, path, "", err)
	}
	return names, nil
}

// withPackage opens the package at path for the duration of fn.
func withPackage(path string, fn func(zr *zip.Reader) error) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return err
	}
	defer r.Close()

	return fn(&r.Reader)
}
