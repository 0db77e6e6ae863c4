package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/danmuck/mcwire/internal/observability"
	"github.com/danmuck/mcwire/internal/protocol/frame"
	"github.com/danmuck/mcwire/internal/protocol/packet"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type decodedPacket struct {
	Key    string        `json:"key"`
	Name   string        `json:"name"`
	Size   int           `json:"size"`
	Packet packet.Packet `json:"packet"`
}

func decodeCmd(c *cli) *cobra.Command {
	var (
		stateFlag string
		dirFlag   string
		raw       bool
		id        int32
	)

	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a packet and print it as JSON",
		Long: `Decode one packet from hex and print it as JSON.

By default the input is a full uncompressed frame (length, id, body).
With --raw the input is only the packet body and --id selects the packet.

Examples:
  mcwire decode -s status -d serverbound 0901000000000000002a
  mcwire decode -s status -d clientbound --raw --id 1 000000000000002a`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := packet.ParseState(stateFlag)
			if err != nil {
				return err
			}
			dir, err := packet.ParseDirection(dirFlag)
			if err != nil {
				return err
			}
			data, err := parseHex(args[0])
			if err != nil {
				return err
			}

			f := frame.Frame{ID: id, Body: data}
			if !raw {
				var n int
				f, n, err = frame.Split(data, c.cfg.FrameLimits())
				if err != nil {
					return fmt.Errorf("read frame: %w", err)
				}
				if n != len(data) {
					return fmt.Errorf("read frame: %d bytes after the frame", len(data)-n)
				}
			}

			reg := packet.Default()
			d, _ := reg.Lookup(state, dir, f.ID)
			p, err := reg.DecodeFrame(state, dir, f)
			observability.RecordPacket("decode", state.String(), dir.String(), d.Name, err == nil)
			if err != nil {
				return err
			}
			log.Debug().Str("key", d.Key.String()).Int("bytes", len(f.Body)).Msg("decoded packet")

			out, err := json.MarshalIndent(decodedPacket{
				Key:    d.Key.String(),
				Name:   d.Name,
				Size:   p.ByteLen(),
				Packet: p,
			}, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVarP(&stateFlag, "state", "s", "", "connection state (handshake|status|login)")
	cmd.Flags().StringVarP(&dirFlag, "direction", "d", "", "packet direction (clientbound|serverbound)")
	cmd.Flags().BoolVar(&raw, "raw", false, "input is a packet body without frame header")
	cmd.Flags().Int32Var(&id, "id", 0, "packet id for --raw input")
	_ = cmd.MarkFlagRequired("state")
	_ = cmd.MarkFlagRequired("direction")

	return cmd
}

// parseHex accepts plain hex with optional whitespace, ':' separators or a 0x prefix.
func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.NewReplacer(" ", "", ":", "", "\n", "", "\t", "").Replace(s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return b, nil
}
