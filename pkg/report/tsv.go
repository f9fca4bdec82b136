// Package report renders audit rows: the TSV report file and the console
// outlier summary.
package report

import (
	"bufio"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/agentstation/floataudit/pkg/constants"
	"github.com/agentstation/floataudit/pkg/delta"
	"github.com/agentstation/floataudit/pkg/errors"
)

// Header is the first line of the TSV report.
const Header = "label\tnum\tcaption_page\tfirst_ref_page\tdelta_pages"

// Fields returns the TSV fields of a row. Missing reference and delta are empty.
func Fields(r delta.Row) []string {
	return []string{
		r.Label,
		r.Ordinal,
		strconv.Itoa(r.CaptionPage),
		optional(r.FirstRefPage),
		optional(r.Delta),
	}
}

func optional(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// WriteTSV writes the header and one line per row.
func WriteTSV(w io.Writer, rows []delta.Row) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := bw.WriteString(strings.Join(Fields(r), "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Save writes the TSV report to path, creating parent directories.
// The file is replaced atomically: content goes to a temporary file in the
// same directory which is then renamed over path.
func Save(fs afero.Fs, path string, rows []delta.Row) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := afero.TempFile(fs, dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return errors.WrapIO("create", dir, err)
	}
	tmpPath := tmp.Name()

	if err := WriteTSV(tmp, rows); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmpPath)
		return errors.WrapIO("write", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpPath)
		return errors.WrapIO("write", tmpPath, err)
	}
	_ = fs.Chmod(tmpPath, constants.FilePermissions)

	if err := fs.Rename(tmpPath, path); err != nil {
		_ = fs.Remove(tmpPath)
		return errors.WrapIO("rename", path, err)
	}
	return nil
}
