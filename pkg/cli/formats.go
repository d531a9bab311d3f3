// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/deviceinfo/pkg/snapshot"
)

func formatsCmd() *cli.Command {
	return &cli.Command{
		Name:  "formats",
		Usage: "List the rendering formats accepted by render",
		Action: func(_ context.Context, cmd *cli.Command) error {
			w := stdout(cmd)
			for _, f := range snapshot.SupportedFormats() {
				if _, err := fmt.Fprintln(w, f); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func fieldsCmd() *cli.Command {
	return &cli.Command{
		Name:  "fields",
		Usage: "Collect a snapshot and print its flat field sequence, one field per line",
		Description: `Prints the 11 fields in wire order: ipv4, ipv6, mac, osVersion,
apiLevel, deviceType, product, brand, manufacturer, serial, board.
Address lists are joined with ", ".`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "names",
				Usage: "prefix each value with its field name",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s := newService(configFrom(ctx)).Collect(ctx)

			w := stdout(cmd)
			for i, v := range s.Fields() {
				line := v
				if cmd.Bool("names") {
					line = snapshot.FieldNames[i] + ": " + v
				}
				if _, err := fmt.Fprintln(w, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
