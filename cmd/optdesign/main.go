// This file is part of optdesign package. It is free software, distributed
// under the terms of GNU Lesser General Public License Version 3, or any later
// version. See the COPYING tile included in this archive.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/coneopt/optdesign/design"
	"github.com/coneopt/optdesign/solver"
)

var (
	flagQ      int
	flagP      int
	flagBudget float64
	flagCap    float64
	flagSeed   int64
	flagKind   string
	verbose    bool
)

func newLogger() *zap.Logger {
	if verbose {
		log, err := zap.NewDevelopment()
		if err == nil {
			return log
		}
	}
	log, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// solverOptions pulls the solver section from viper. Defaults live here;
// a config file or OPTDESIGN_* environment variables override them.
func solverOptions(log *zap.Logger) solver.Options {
	return solver.Options{
		MaxIter:      viper.GetInt("solver.maxiter"),
		AbsTol:       viper.GetFloat64("solver.abstol"),
		RelTol:       viper.GetFloat64("solver.reltol"),
		FeasTol:      viper.GetFloat64("solver.feastol"),
		ShowProgress: viper.GetBool("solver.progress"),
		KKTSolver:    viper.GetString("solver.kkt"),
		Logger:       log,
	}
}

func initConfig() {
	viper.SetDefault("solver.maxiter", solver.DefaultMaxIter)
	viper.SetConfigName("optdesign")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("optdesign")
	viper.AutomaticEnv()
	// missing config file is fine, defaults apply
	_ = viper.ReadInConfig()
}

func designCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "design",
		Short: "Formulate and solve A-, E- and D-optimal experiment designs",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()

			vs, err := design.RandomVectorSet(flagQ, flagP, flagSeed)
			if err != nil {
				return err
			}
			par := design.Params{Budget: flagBudget, Cap: flagCap}
			opts := solverOptions(log)

			kinds := map[string]func(*design.VectorSet, design.Params) (*design.Design, error){
				"a": design.AOptimal,
				"e": design.EOptimal,
				"d": design.DOptimal,
			}
			for _, k := range []string{"a", "e", "d"} {
				if flagKind != "all" && flagKind != k {
					continue
				}
				d, err := kinds[k](vs, par)
				if err != nil {
					return err
				}
				res, err := d.Solve(opts)
				if err != nil {
					log.Warn("design not solved", zap.Stringer("kind", d.Kind()), zap.Error(err))
					continue
				}
				fmt.Printf("%s objective: %.9f\n", d.Kind(), res.Objective)
				fmt.Printf("%s allocation: %v\n", d.Kind(), res.Allocation)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&flagQ, "q", 4, "dimension of the candidate vectors")
	cmd.Flags().IntVar(&flagP, "p", 8, "number of candidate vectors")
	cmd.Flags().Float64Var(&flagBudget, "budget", 12.0, "total experiment budget")
	cmd.Flags().Float64Var(&flagCap, "cap", 3.0, "per-experiment allocation cap")
	cmd.Flags().Int64Var(&flagSeed, "seed", 99, "random seed for the candidate set")
	cmd.Flags().StringVar(&flagKind, "kind", "all", "scalarization: a, e, d or all")
	return cmd
}

func main() {
	root := &cobra.Command{
		Use:           "optdesign",
		Short:         "Conic experiment design over the cvx solvers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cobra.OnInitialize(initConfig)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "development logging")
	root.AddCommand(designCmd())
	root.AddCommand(modifyCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "optdesign: %v\n", err)
		os.Exit(1)
	}
}
