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
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Pallinder/go-randomdata"
	pqLocal "github.com/xitongsys/parquet-go-source/local"
	pqReader "github.com/xitongsys/parquet-go/reader"
	"go.uber.org/zap"

	"github.com/tensorkit/narray/pkg/array"
	"github.com/tensorkit/narray/pkg/compare"
	"github.com/tensorkit/narray/pkg/dtype"
	"github.com/tensorkit/narray/pkg/util"
)

const nameWidth = 16

func recordDescriptor() *dtype.Descriptor {
	key := dtype.NewInt(8)
	score := dtype.NewFloat(8)
	name := dtype.NewString(nameWidth)
	desc := dtype.NewStruct("record", []dtype.Field{
		{Name: "key", Offset: 0, Desc: key},
		{Name: "score", Offset: 8, Desc: score},
		{Name: "name", Offset: 16, Desc: name},
	})
	key.Release()
	score.Release()
	name.Release()
	return desc
}

func fillRecord(elem []byte, key int64, score float64, name string) {
	util.StoreAs(key, elem)
	util.StoreAs(score, elem[8:])
	padded := elem[16 : 16+nameWidth]
	util.Fill(padded, nameWidth, byte(' '))
	copy(padded, name)
}

func runRandom(cfg *util.Config) error {
	rows := cfg.Random.Rows
	desc := recordDescriptor()
	if cfg.Debug.PrintTree {
		fmt.Print(desc.Explain())
	}

	arr := array.NewArray(desc, []int{rows})
	desc.Release()
	defer arr.Release()
	for i := 0; i < rows; i++ {
		fillRecord(arr.Elem([]int{i}),
			int64(randomdata.Number(0, rows/4+1)),
			float64(randomdata.Number(0, 1000))/10,
			randomdata.SillyName())
	}

	orders := []compare.OrderSpec{
		{Field: "key"},
		{Field: "score", Desc: true},
	}
	start := time.Now()
	perm, err := compare.ArgSort(arr, orders)
	if err != nil {
		return err
	}
	util.Info("argsort done",
		zap.Int("rows", rows),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int64("first", perm[0]))

	//broadcast compare of scalar operands
	fdesc := dtype.NewFloat(8)
	lhs := array.NewArray(fdesc, []int{rows, 1})
	rhs := array.NewArray(fdesc, []int{1, 8})
	fdesc.Release()
	defer lhs.Release()
	defer rhs.Release()
	for i := 0; i < rows; i++ {
		util.StoreAs(float64(randomdata.Number(0, 1000)), lhs.Elem([]int{i, 0}))
	}
	for j := 0; j < 8; j++ {
		util.StoreAs(float64(randomdata.Number(0, 1000)), rhs.Elem([]int{0, j}))
	}
	for _, op := range []compare.CmpOp{
		compare.CMP_EQ, compare.CMP_NE, compare.CMP_LT,
		compare.CMP_LE, compare.CMP_GT, compare.CMP_GE,
	} {
		res, err := compare.CompareArrays(lhs, rhs, op)
		if err != nil {
			return err
		}
		util.Info("compared",
			zap.String("op", op.String()),
			zap.Ints("shape", res.Shape()),
			zap.Int("true", countTrue(res)))
		res.Release()
	}

	//first write through a provisional view warns once
	view := arr.ProvisionalView()
	defer view.Release()
	view.SetElem([]int{0}, arr.Elem([]int{1}))
	view.SetElem([]int{1}, arr.Elem([]int{0}))
	return nil
}

//case file for the compare cmd

type CompareCase struct {
	Name      string `toml:"name"`
	LhsColumn int    `toml:"lhs_column"`
	RhsColumn int    `toml:"rhs_column"`
	Op        string `toml:"op"`
	RStrip    bool   `toml:"rstrip"`
}

type CaseFile struct {
	Data  string        `toml:"data"`
	Cases []CompareCase `toml:"cases"`
}

func runCompare(cfg *util.Config) error {
	dataPath := cfg.Compare.DataPath
	cases := []CompareCase{{
		Name:      "cli",
		LhsColumn: cfg.Compare.LhsColumn,
		RhsColumn: cfg.Compare.RhsColumn,
		Op:        cfg.Compare.Op,
		RStrip:    cfg.Compare.RStrip,
	}}
	if cfg.Compare.CasePath != "" {
		caseFile := &CaseFile{}
		if _, err := toml.DecodeFile(cfg.Compare.CasePath, caseFile); err != nil {
			return err
		}
		if caseFile.Data != "" {
			dataPath = caseFile.Data
		}
		cases = caseFile.Cases
	}
	if dataPath == "" {
		return fmt.Errorf("no parquet data path")
	}

	for _, c := range cases {
		if err := runCompareCase(cfg, dataPath, c); err != nil {
			return err
		}
	}
	return nil
}

func runCompareCase(cfg *util.Config, dataPath string, c CompareCase) error {
	op, err := compare.ParseCmpOp(c.Op)
	if err != nil {
		return err
	}
	lhs, err := loadParquetColumn(dataPath, c.LhsColumn)
	if err != nil {
		return err
	}
	defer lhs.Release()
	rhs, err := loadParquetColumn(dataPath, c.RhsColumn)
	if err != nil {
		return err
	}
	defer rhs.Release()

	var opts []compare.CompareOption
	if c.RStrip {
		opts = append(opts, compare.WithRStrip())
	}
	start := time.Now()
	res, err := compare.CompareArrays(lhs, rhs, op, opts...)
	if err != nil {
		return err
	}
	defer res.Release()
	util.Info("case done",
		zap.String("case", c.Name),
		zap.String("op", op.String()),
		zap.Int("rows", res.Size()),
		zap.Int("true", countTrue(res)),
		zap.Duration("elapsed", time.Since(start)))
	if cfg.Debug.PrintResult {
		fmt.Println(res.Data())
	}
	return nil
}

func countTrue(res *array.Array) int {
	cnt := 0
	for _, b := range res.Data() {
		if b != 0 {
			cnt++
		}
	}
	return cnt
}

func loadParquetColumn(path string, col int) (*array.Array, error) {
	pqFile, err := pqLocal.NewLocalFileReader(path)
	if err != nil {
		return nil, err
	}
	defer pqFile.Close()
	reader, err := pqReader.NewParquetColumnReader(pqFile, 1)
	if err != nil {
		return nil, err
	}
	defer reader.ReadStop()

	num := reader.GetNumRows()
	values, _, _, err := reader.ReadColumnByIndex(int64(col), num)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("column %d of %s is empty", col, path)
	}
	return columnToArray(values)
}

func columnToArray(values []interface{}) (*array.Array, error) {
	n := len(values)
	switch values[0].(type) {
	case int32:
		desc := dtype.NewInt(4)
		defer desc.Release()
		arr := array.NewArray(desc, []int{n})
		for i, v := range values {
			util.StoreAs(v.(int32), arr.Elem([]int{i}))
		}
		return arr, nil
	case int64:
		desc := dtype.NewInt(8)
		defer desc.Release()
		arr := array.NewArray(desc, []int{n})
		for i, v := range values {
			util.StoreAs(v.(int64), arr.Elem([]int{i}))
		}
		return arr, nil
	case float32:
		desc := dtype.NewFloat(4)
		defer desc.Release()
		arr := array.NewArray(desc, []int{n})
		for i, v := range values {
			util.StoreAs(v.(float32), arr.Elem([]int{i}))
		}
		return arr, nil
	case float64:
		desc := dtype.NewFloat(8)
		defer desc.Release()
		arr := array.NewArray(desc, []int{n})
		for i, v := range values {
			util.StoreAs(v.(float64), arr.Elem([]int{i}))
		}
		return arr, nil
	case string:
		width := 0
		for _, v := range values {
			if len(v.(string)) > width {
				width = len(v.(string))
			}
		}
		desc := dtype.NewString(width)
		defer desc.Release()
		arr := array.NewArray(desc, []int{n})
		for i, v := range values {
			elem := arr.Elem([]int{i})
			util.Fill(elem, width, byte(' '))
			copy(elem, v.(string))
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unsupported parquet column type %T", values[0])
	}
}
