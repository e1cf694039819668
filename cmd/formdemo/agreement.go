package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/lukas4311/WpfValidation/modules/agreement"
)

func agreementCmd(run runner) *cobra.Command {
	var (
		agentID      int
		paramID      int
		from, to     string
		typeID       int
		userDisabled bool
		save         bool
	)

	cmd := &cobra.Command{
		Use:   "agreement",
		Short: "Validate an agent agreement",
		Long: `Loads a new agreement (or the stored agreement 42 with --param 42),
applies the given dates and type and validates the form.`,
		Example: `  formdemo agreement --from 2024-03-01 --to 2024-12-31 --type 1
  formdemo agreement --param 42 --to 2020-01-01 --lang cs`,
	}

	cmd.Flags().IntVar(&agentID, "agent", 1, "Agent ID")
	cmd.Flags().IntVar(&paramID, "param", 0, "Stored agreement ID; 0 starts a new agreement")
	cmd.Flags().StringVar(&from, "from", "", "Valid from (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Valid to (YYYY-MM-DD)")
	cmd.Flags().IntVar(&typeID, "type", 0, "Agreement type ID (1-3)")
	cmd.Flags().BoolVar(&userDisabled, "user-disabled", false, "Treat the agent's user as disabled")
	cmd.Flags().BoolVar(&save, "save", false, "Save the agreement when the form is valid")

	cmd.RunE = run(func(ctx context.Context, a *app, out io.Writer) error {
		validFrom, err := parseDate(from)
		if err != nil {
			return err
		}
		validTo, err := parseDate(to)
		if err != nil {
			return err
		}

		storage := newDemoAgreements(!userDisabled, time.Now())
		form, err := agreement.New(storage,
			agreement.WithLogger(a.log),
			agreement.WithEntityOptions(a.entityOptions()...))
		if err != nil {
			return err
		}
		defer form.Close()

		var param *int
		if paramID != 0 {
			param = &paramID
		}
		if err := form.Load(ctx, agentID, param); err != nil {
			return err
		}

		if !validFrom.IsZero() {
			form.SetValidFrom(validFrom)
		}
		if !validTo.IsZero() {
			form.SetValidTo(validTo)
		}
		if typeID != 0 {
			if err := form.SelectType(typeID); err != nil {
				return err
			}
		}
		if _, err := form.ForceValidate(ctx).AwaitContext(ctx); err != nil {
			return err
		}

		var extra []string
		if save {
			if err := form.Save(ctx); err != nil {
				extra = append(extra, "save:     "+err.Error())
			} else {
				id, _ := form.ParamID()
				extra = append(extra, fmt.Sprintf("save:     stored as agreement %d", id))
			}
		}
		report(out, form.Entity, form.CanSave(), extra...)
		return nil
	})

	return cmd
}
