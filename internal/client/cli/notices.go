package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"noticeease/internal/client/models"
	"noticeease/internal/client/services"
	"noticeease/internal/filex"
)

// printfFn is a test seam for the rendered notice list.
var printfFn = fmt.Printf

// findBySno resolves a display serial number to the cached notice.
func (a *App) findBySno(ctx context.Context, sno string) (*models.Notice, error) {
	n, err := strconv.ParseInt(sno, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid serial number %q", sno)
	}

	view, err := a.notices.LoadView(ctx)
	if err != nil {
		return nil, err
	}
	for i := range view {
		if view[i].CustomSno == n {
			return &view[i], nil
		}
	}
	return nil, fmt.Errorf("no notice with serial number %d", n)
}

// Notices renders the cached notices newest first, after applying the
// active filter. The store is the single source of the view; no network
// call happens here.
func (a *App) Notices(ctx context.Context) error {
	view, err := a.notices.LoadView(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	filtered := services.ApplyFilter(view, a.filter)

	unread := 0
	for _, n := range filtered {
		if !n.IsRead {
			unread++
		}
	}
	printfFn("%d notices, %d unread\n", len(filtered), unread)

	// newest first
	for i := len(filtered) - 1; i >= 0; i-- {
		n := filtered[i]
		marker := " "
		if !n.IsRead {
			marker = "*"
		}
		attachment := ""
		if n.FileBuffer != nil {
			attachment = " [attachment]"
		}
		printfFn("%s %4d  %-10s  %s - %s%s\n", marker, n.CustomSno, n.Type, n.Company, n.Subject, attachment)
	}
	return nil
}

// Read opens a notice by serial number, prints it in full and marks it
// read in the store.
func (a *App) Read(ctx context.Context, sno string) error {
	n, err := a.findBySno(ctx, sno)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	fmt.Printf("#%d %s\n", n.CustomSno, n.Subject)
	fmt.Printf("%s | %s | %s\n", n.Company, n.Type, n.NoticeTime.Local().Format("2006-01-02 15:04"))
	fmt.Println(strings.Repeat("-", 40))
	fmt.Println(n.Notice)
	if n.FileBuffer != nil {
		fmt.Printf("Attachment: %s (save %d to export)\n", n.FileBuffer.MimeType, n.CustomSno)
	}

	if err := a.notices.MarkRead(ctx, n.ID); err != nil {
		a.logger.Warn(ctx, "failed to mark notice read", "id", n.ID, "error", err)
	}
	return nil
}

// Save exports a notice attachment into dir, named after the serial
// number with an extension derived from the MIME type.
func (a *App) Save(ctx context.Context, sno, dir string) error {
	n, err := a.findBySno(ctx, sno)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	if n.FileBuffer == nil {
		fmt.Printf("Notice %d has no attachment\n", n.CustomSno)
		return nil
	}

	path, err := filex.SaveAttachment(dir, fmt.Sprintf("notice-%d", n.CustomSno), n.FileBuffer.MimeType, n.FileBuffer.Bytes)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	fmt.Printf("Saved to %s\n", path)
	return nil
}

// Filter sets, shows or clears the view filter. Each group is
// single-select: setting a type replaces the previous type, setting a
// subject replaces the previous subject.
//
// Usage:
//
//	filter                       show the active filter
//	filter type placement        keep placement notices only
//	filter type internship       keep internship notices only
//	filter subject <text>        keep notices with this subject
//	filter clear                 drop all filter groups
func (a *App) Filter(ctx context.Context, args []string) error {
	if len(args) == 0 {
		if a.filter.IsZero() {
			fmt.Println("No filter active.")
			return nil
		}
		if a.filter.Type != nil {
			fmt.Printf("type: %s\n", *a.filter.Type)
		}
		if a.filter.Subject != nil {
			fmt.Printf("subject: %s\n", *a.filter.Subject)
		}
		return nil
	}

	switch args[0] {
	case "clear":
		a.filter = models.Filter{}
		fmt.Println("Filter cleared.")

	case "type":
		if len(args) < 2 {
			fmt.Println("Usage: filter type placement|internship")
			return nil
		}
		var t models.NoticeType
		switch args[1] {
		case "placement":
			t = models.NoticeTypePlacement
		case "internship":
			t = models.NoticeTypeInternship
		default:
			fmt.Println("Usage: filter type placement|internship")
			return nil
		}
		a.filter.Type = &t

	case "subject":
		if len(args) < 2 {
			fmt.Println("Usage: filter subject <text>")
			return nil
		}
		subject := strings.Join(args[1:], " ")
		a.filter.Subject = &subject

	default:
		fmt.Println("Usage: filter [type|subject|clear] ...")
	}
	return nil
}

// Refresh implements the local-first refresh protocol: render the cached
// view immediately, fetch and merge, then re-render when the merge
// brought anything new. A failed fetch leaves the already-rendered local
// view in place.
func (a *App) Refresh(ctx context.Context) error {
	before, err := a.notices.LoadView(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	if err := a.Notices(ctx); err != nil {
		return err
	}

	if err := a.notices.Sync(ctx); err != nil {
		fmt.Println(err.Error())
		return err
	}

	after, err := a.notices.LoadView(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	printfFn("%d new notices\n", len(after)-len(before))
	if len(after) != len(before) {
		return a.Notices(ctx)
	}
	return nil
}
