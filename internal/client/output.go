package client

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/MKhiriev/secure-vault/models"
)

const hiddenSecret = "********"

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
	warnMark = color.New(color.FgYellow).SprintFunc()
	dim      = color.New(color.Faint).SprintFunc()
)

func printOK(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", okMark("✓"), fmt.Sprintf(format, args...))
}

func printWarn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", warnMark("!"), fmt.Sprintf(format, args...))
}

// PrintError writes err the way every command reports failures.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", failMark("✗"), err)
}

func printItems(w io.Writer, items []models.DecryptedVaultItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, dim("no items"))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tUSERNAME\tURL\tTAGS")
	for _, item := range items {
		title := item.Title
		if item.DecryptFailed {
			title += " " + failMark("(undecryptable)")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", item.ID, title, item.Username, item.URL, strings.Join(item.Tags, ","))
	}
	tw.Flush()
}

func printItem(w io.Writer, item models.DecryptedVaultItem, reveal bool) {
	password := hiddenSecret
	if reveal || item.DecryptFailed {
		password = item.Password
	}

	notes := ""
	if item.Notes != nil {
		notes = *item.Notes
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", item.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", item.Title)
	fmt.Fprintf(tw, "Username:\t%s\n", item.Username)
	fmt.Fprintf(tw, "Password:\t%s\n", password)
	fmt.Fprintf(tw, "URL:\t%s\n", item.URL)
	fmt.Fprintf(tw, "Tags:\t%s\n", strings.Join(item.Tags, ", "))
	fmt.Fprintf(tw, "Notes:\t%s\n", notes)
	fmt.Fprintf(tw, "Created:\t%s\n", formatTime(item.CreatedAt))
	fmt.Fprintf(tw, "Updated:\t%s\n", formatTime(item.UpdatedAt))
	tw.Flush()

	if item.DecryptFailed {
		printWarn(w, "secret fields could not be decrypted with this key")
	}
}

func printStrength(w io.Writer, s models.PasswordStrength) {
	fmt.Fprintf(w, "Strength: %s (%d/4)\n", s.Label, s.Score)
	for _, f := range s.Feedback {
		fmt.Fprintf(w, "  - %s\n", f)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
