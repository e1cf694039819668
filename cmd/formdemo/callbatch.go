package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lukas4311/WpfValidation/modules/callbatch"
)

func callbatchCmd(run runner) *cobra.Command {
	var (
		stateID           int
		from, to          string
		minDays, maxDays  int
		region, batchType int
		create, lastDay   bool
		noState           bool
	)

	cmd := &cobra.Command{
		Use:   "callbatch",
		Short: "Validate a mystery call batch filter",
		Example: `  formdemo callbatch --from 2024-05-01 --to 2024-05-09 --create
  formdemo callbatch --min-days 10 --max-days 5`,
	}

	cmd.Flags().IntVar(&stateID, "state", 0, "Contact state ID (3, 9 or 12); 0 keeps the first state")
	cmd.Flags().BoolVar(&noState, "no-state", false, "Clear the contact state")
	cmd.Flags().StringVar(&from, "from", "", "First status change from (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "First status change to (YYYY-MM-DD)")
	cmd.Flags().IntVar(&minDays, "min-days", 0, "Minimum days since the last state change")
	cmd.Flags().IntVar(&maxDays, "max-days", 0, "Maximum days since the last state change")
	cmd.Flags().IntVar(&region, "region", 0, "Region ID")
	cmd.Flags().IntVar(&batchType, "batch-type", 0, "Zero-based batch kind")
	cmd.Flags().BoolVar(&create, "create", false, "Create the batch when the form is valid")
	cmd.Flags().BoolVar(&lastDay, "last-day", false, "Create the last-day batch regardless of the filter")

	cmd.RunE = run(func(ctx context.Context, a *app, out io.Writer) error {
		windowFrom, err := parseDate(from)
		if err != nil {
			return err
		}
		windowTo, err := parseDate(to)
		if err != nil {
			return err
		}

		form, err := callbatch.New(&demoContacts{},
			callbatch.WithLogger(a.log),
			callbatch.WithEntityOptions(a.entityOptions()...))
		if err != nil {
			return err
		}
		defer form.Close()

		if err := form.Load(ctx); err != nil {
			return err
		}

		switch {
		case noState:
			form.ClearContactState()
		case stateID != 0:
			if err := form.SelectContactState(stateID); err != nil {
				return err
			}
		}
		form.SetWindow(windowFrom, windowTo)
		form.SetDayRange(optionalInt(cmd, "min-days", minDays), optionalInt(cmd, "max-days", maxDays))
		form.SetRegion(region)
		form.SetBatchType(batchType)
		if _, err := form.ForceValidate(ctx).AwaitContext(ctx); err != nil {
			return err
		}

		var extra []string
		if create {
			if _, err := form.CreateBatch(ctx); err != nil {
				extra = append(extra, "batch:    "+err.Error())
			}
		}
		if lastDay {
			if _, err := form.CreateLastDayBatch(ctx); err != nil {
				return err
			}
		}
		if form.ResultVisible() {
			extra = append(extra, fmt.Sprintf("result:   %s", form.Result()))
		}
		report(out, form.Entity, form.CanCreateBatch(), extra...)
		return nil
	})

	return cmd
}

// optionalInt returns nil unless the flag was given.
func optionalInt(cmd *cobra.Command, name string, v int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}
