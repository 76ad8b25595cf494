// Copyright 2017 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/cayleygraph/owldoc/clog"
	_ "github.com/cayleygraph/owldoc/clog/glog"
	"github.com/cayleygraph/owldoc/cmd/owldoc/command"
)

func main() {
	// glog flags (-v, --logtostderr, ...) live on the go flag set
	flag.Set("logtostderr", "true")
	root := command.NewRootCmd()
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		clog.Errorf("%v", err)
		stop()
		os.Exit(1)
	}
}
