// This file is part of optdesign package. It is free software, distributed
// under the terms of GNU Lesser General Public License Version 3, or any later
// version. See the COPYING tile included in this archive.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coneopt/optdesign/model"
)

func modifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modify",
		Short: "Walk through the model mutation API on a small LP",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()
			opts := solverOptions(log)

			m := model.New()
			x := m.AddVariable("x")
			y := m.AddVariable("y")
			m.SetLower(x, 0)
			m.SetLower(y, 0)
			row, err := m.AddConstraint("row", model.LinExpr{}.Plus(x, 2).Plus(y, 1), model.LessEqual, 3)
			if err != nil {
				return err
			}
			if _, err := m.AddConstraint("row2", model.LinExpr{}.Plus(x, 1).Plus(y, 2), model.LessEqual, 3); err != nil {
				return err
			}
			if err := m.SetObjective(model.Maximize, model.LinExpr{}.Plus(x, 4).Plus(y, 5)); err != nil {
				return err
			}

			report := func(step string) {
				sol, err := m.Solve(opts)
				if err != nil {
					fmt.Printf("%-28s %v\n", step, err)
					return
				}
				fmt.Printf("%-28s objective=%.6f\n", step, sol.Objective)
			}

			report("initial")

			m.SetUpper(y, 0.5)
			report("upper bound y<=0.5")

			if err := m.Fix(y, 0.25, false); err != nil {
				fmt.Printf("%-28s rejected: %v\n", "fix y (no force)", err)
			}
			if err := m.Fix(y, 0.25, true); err != nil {
				return err
			}
			report("fix y=0.25 (force)")

			if err := m.Unfix(y); err != nil {
				return err
			}
			m.SetLower(y, 0)
			if err := m.SetCoefficient(row, x, 3); err != nil {
				return err
			}
			report("coefficient row[x]=3")

			if err := m.SetObjective(model.Minimize, model.LinExpr{}.Plus(x, 1).Plus(y, 1)); err != nil {
				return err
			}
			report("objective replaced")

			if err := m.Delete(x); err != nil {
				return err
			}
			fmt.Printf("%-28s valid(x)=%v variables=%d\n", "delete x", m.IsValid(x), m.NumVariables())
			return nil
		},
	}
}
