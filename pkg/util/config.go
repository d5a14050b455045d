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

package util

type RandomOptions struct {
	Rows   int  `tag:"rows"`
	RStrip bool `tag:"rstrip"`
}

type CompareOptions struct {
	DataPath  string `tag:"dataPath"`
	LhsColumn int    `tag:"lhsColumn"`
	RhsColumn int    `tag:"rhsColumn"`
	Op        string `tag:"op"`
	RStrip    bool   `tag:"rstrip"`
	CasePath  string `tag:"casePath"`
}

type DebugOptions struct {
	PrintTree   bool `tag:"printTree"`
	PrintResult bool `tag:"printResult"`
}

type Config struct {
	Random  RandomOptions  `tag:"random"`
	Compare CompareOptions `tag:"compare"`
	Debug   DebugOptions   `tag:"debug"`
}
