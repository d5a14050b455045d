// Copyright 2024-2025 The narray Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.uber.org/zap"

	"github.com/tensorkit/narray/pkg/util"
)

func init() {
	cobra.OnInitialize(loadConfig)
	initRandomCmd()
	initCompareCmd()
}

var testerCfg = &util.Config{}

///root cmd

var info = "tester"
var RootCmd = &cobra.Command{
	Use:          "tester",
	Short:        info,
	Long:         info,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("use tester --help or -h")
	},
}

func initDebugOptions() {
	testerCfg.Debug.PrintTree = viper.GetBool("debug.printTree")
	testerCfg.Debug.PrintResult = viper.GetBool("debug.printResult")
}

//random cmd

var randomInfo = "compare and sort random arrays"
var randomCmd = &cobra.Command{
	Use:   "random",
	Short: randomInfo,
	Long:  randomInfo,
	RunE: func(cmd *cobra.Command, args []string) error {
		initRandomCfg()
		return runRandom(testerCfg)
	},
}

func initRandomCfg() {
	initDebugOptions()
	testerCfg.Random.Rows = viper.GetInt("random.rows")
	testerCfg.Random.RStrip = viper.GetBool("random.rstrip")
}

func initRandomCmd() {
	RootCmd.AddCommand(randomCmd)
	randomCmd.Flags().IntVar(&testerCfg.Random.Rows, "rows", 4096, "row count of generated arrays")
	randomCmd.Flags().BoolVar(&testerCfg.Random.RStrip, "rstrip", true, "strip trailing whitespace in string comparison")

	viper.BindPFlag("random.rows", randomCmd.Flags().Lookup("rows"))
	viper.BindPFlag("random.rstrip", randomCmd.Flags().Lookup("rstrip"))
}

//compare cmd

var compareInfo = "compare parquet columns"
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: compareInfo,
	Long:  compareInfo,
	RunE: func(cmd *cobra.Command, args []string) error {
		initCompareCfg()
		return runCompare(testerCfg)
	},
}

func initCompareCfg() {
	initDebugOptions()
	testerCfg.Compare.DataPath = viper.GetString("compare.dataPath")
	testerCfg.Compare.LhsColumn = viper.GetInt("compare.lhsColumn")
	testerCfg.Compare.RhsColumn = viper.GetInt("compare.rhsColumn")
	testerCfg.Compare.Op = viper.GetString("compare.op")
	testerCfg.Compare.RStrip = viper.GetBool("compare.rstrip")
	testerCfg.Compare.CasePath = viper.GetString("compare.casePath")
}

func initCompareCmd() {
	RootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVar(&testerCfg.Compare.DataPath, "data_path", "", "parquet data path")
	compareCmd.Flags().IntVar(&testerCfg.Compare.LhsColumn, "lhs_column", 0, "left column index")
	compareCmd.Flags().IntVar(&testerCfg.Compare.RhsColumn, "rhs_column", 1, "right column index")
	compareCmd.Flags().StringVar(&testerCfg.Compare.Op, "op", "==", "comparison operator. ==,!=,<,<=,>,>=")
	compareCmd.Flags().BoolVar(&testerCfg.Compare.RStrip, "rstrip", false, "strip trailing whitespace in string comparison")
	compareCmd.Flags().StringVar(&testerCfg.Compare.CasePath, "case_path", "", "toml case file. overrides the single comparison flags")

	viper.BindPFlag("compare.dataPath", compareCmd.Flags().Lookup("data_path"))
	viper.BindPFlag("compare.lhsColumn", compareCmd.Flags().Lookup("lhs_column"))
	viper.BindPFlag("compare.rhsColumn", compareCmd.Flags().Lookup("rhs_column"))
	viper.BindPFlag("compare.op", compareCmd.Flags().Lookup("op"))
	viper.BindPFlag("compare.rstrip", compareCmd.Flags().Lookup("rstrip"))
	viper.BindPFlag("compare.casePath", compareCmd.Flags().Lookup("case_path"))
}

var defCfgFilePaths = []string{".", "etc"}
var cfgFileName = "tester.toml"

func loadConfig() {
	for _, dirPath := range defCfgFilePaths {
		fpath := filepath.Join(dirPath, cfgFileName)
		if util.FileIsValid(fpath) {
			viper.SetConfigFile(fpath)
			err := viper.ReadInConfig()
			if err != nil {
				util.Error("viper load config file failed",
					zap.String("fpath", fpath),
					zap.Error(err))
				continue
			}
			break
		}
	}
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		util.Error("tester failed", zap.Error(err))
		os.Exit(1)
	}
}
