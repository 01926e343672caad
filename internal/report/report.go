// Package report renders exercise results as the text a user sees.
// Operations return results and errors; this is the only place they are printed.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/ideamans/go-l10n"

	"fsx/internal/fsx"
)

// Printer writes localized result lines to out. When diag is non-nil the
// underlying error of every failure is written there as well.
type Printer struct {
	out  io.Writer
	diag io.Writer
}

// NewPrinter creates a Printer. Pass a nil diag to suppress error details.
func NewPrinter(out, diag io.Writer) *Printer {
	return &Printer{out: out, diag: diag}
}

func (p *Printer) println(msg string) {
	fmt.Fprintln(p.out, msg)
}

func (p *Printer) failure(msg string, err error) {
	p.println(msg)
	if p.diag != nil {
		fmt.Fprintf(p.diag, "%v\n", err)
	}
}

// created prints the name and path of a new file. With diagnostics enabled
// an explicit success line comes first.
func (p *Printer) created(res fsx.CreateResult) {
	if p.diag != nil {
		p.println(l10n.T("File created successfully!"))
	}
	p.println(l10n.F("File name: %s", res.Name))
	p.println(l10n.F("Path: %s", res.Path))
}

// CreateFile prints the name and path of a new file, or that it already existed.
func (p *Printer) CreateFile(res fsx.CreateResult, err error) {
	switch {
	case err != nil:
		p.failure(l10n.T("Error creating the file..."), err)
	case res.Created:
		p.created(res)
	default:
		p.println(l10n.T("File already exists..."))
	}
}

// CheckExists prints the create step followed by the existence check.
func (p *Printer) CheckExists(res fsx.ExistsResult, err error) {
	if err != nil {
		p.failure(l10n.T("Error creating the file..."), err)
		return
	}
	if res.Create.Created {
		p.created(res.Create)
	}
	if res.Exists {
		p.println(l10n.T("File already exists."))
	}
}

// Permissions prints one line for readability and one for writability.
func (p *Printer) Permissions(perms fsx.Permissions) {
	if perms.Readable {
		p.println(l10n.T("The file can be read."))
	} else {
		p.println(l10n.T("The file cannot be read."))
	}

	if perms.Writable {
		p.println(l10n.T("The file can be written."))
	} else {
		p.println(l10n.T("The file cannot be written."))
	}
}

// Prompt asks for a file or directory name without ending the line.
func (p *Printer) Prompt() {
	fmt.Fprint(p.out, l10n.T("Enter a file/directory name: "))
}

// Classification prints a line for each predicate that holds.
func (p *Printer) Classification(c fsx.Classification) {
	if c.IsFile {
		p.println(l10n.T("You entered the name of a file."))
	}
	if c.IsDir {
		p.println(l10n.T("You entered the name of a directory."))
	}
}

// InputError reports that no name could be read.
func (p *Printer) InputError(err error) {
	p.failure(l10n.T("No name was entered."), err)
}

// WriteLine prints nothing on success and a generic message on failure.
func (p *Printer) WriteLine(err error) {
	if err != nil {
		p.failure(l10n.T("An error occurred while writing to the file..."), err)
	}
}

// Line prints one line produced by ReadLines.
func (p *Printer) Line(line string) {
	p.println(line)
}

// ReadError reports a failure to open or read a file.
func (p *Printer) ReadError(err error) {
	p.failure(l10n.T("An error occurred..."), err)
}

// Runs prints one line per recorded run.
func (p *Printer) Runs(runs []*fsx.Run) {
	if len(runs) == 0 {
		p.println(l10n.T("No runs recorded."))
		return
	}

	for _, r := range runs {
		duration := ""
		if r.FinishedAt.Valid {
			duration = r.FinishedAt.Time.Sub(r.StartedAt).Truncate(time.Millisecond).String()
		}
		fmt.Fprintf(p.out, "#%d  %-16s  %s  %-7s  %-8s  %s\n",
			r.ID,
			r.Operation,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Status,
			duration,
			r.Path,
		)
	}
}
