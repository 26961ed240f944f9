package cli

import (
	"context"
	"flag"
)

// cmdNotifications lists the inbox by default; -read and -dismiss act on a
// single entry instead.
func (a *App) cmdNotifications(ctx context.Context, fs *flag.FlagSet, args []string) error {
	read := fs.Int64("read", 0, "mark this notification as read")
	dismiss := fs.Int64("dismiss", 0, "delete this notification")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *read != 0:
		if err := a.inbox.MarkRead(ctx, *read); err != nil {
			return err
		}
		a.printf("Notification #%d marked as read.\n", *read)
		return nil
	case *dismiss != 0:
		if err := a.inbox.Dismiss(ctx, *dismiss); err != nil {
			return err
		}
		a.printf("Notification #%d dismissed.\n", *dismiss)
		return nil
	}

	list, err := a.inbox.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No notifications.\n")
		return nil
	}
	for _, n := range list {
		marker := "*"
		if n.Read {
			marker = " "
		}
		a.printf("%s #%d %s (%s)\n", marker, n.ID, n.Message, n.CreatedAt)
	}
	return nil
}
