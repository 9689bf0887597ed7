package cli

import (
	"bufio"
	"io"

	"github.com/dmitrijs2005/ehrdesk/internal/client/models"
)

// form reads a sequence of fields, stopping at the first read error.
type form struct {
	reader *bufio.Reader
	out    io.Writer
	err    error
}

func (a *App) newForm() *form {
	return &form{reader: a.reader, out: a.out}
}

// text prompts for a single line. A non-empty *dst is offered as the default.
func (f *form) text(prompt string, dst *string) {
	if f.err != nil {
		return
	}
	*dst, f.err = GetTextDefault(f.reader, prompt, *dst, f.out)
}

func (f *form) id(prompt string, dst *models.ID) {
	s := dst.String()
	f.text(prompt, &s)
	*dst = models.ID(s)
}

// multiline keeps *dst when nothing is entered.
func (f *form) multiline(prompt string, dst *string) {
	if f.err != nil {
		return
	}
	if *dst != "" {
		prompt += " [keep current: empty line]"
	}
	var text string
	if text, f.err = GetMultiline(f.reader, prompt, f.out); f.err == nil && text != "" {
		*dst = text
	}
}

// idArg takes the record id from args or asks for it.
func (a *App) idArg(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return GetSimpleText(a.reader, prompt, a.out)
}

// confirmDelete asks before deleting when a person is at the terminal.
func (a *App) confirmDelete(what string) (bool, error) {
	if !a.interactive {
		return true, nil
	}
	return Confirm(a.reader, "Delete "+what+"?", a.out)
}

func printAppointments(w io.Writer, list []models.Appointment) {
	rows := make([][]string, 0, len(list))
	for _, ap := range list {
		rows = append(rows, []string{
			ap.ID.String(), ap.Date, ap.Time, ap.DocName, ap.PatName, ap.Department, appointmentStatus(ap.Status),
		})
	}
	printTable(w, []string{"ID", "DATE", "TIME", "DOCTOR", "PATIENT", "DEPARTMENT", "STATUS"}, rows)
}
