package main

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/danmuck/mcwire/internal/observability"
	"github.com/danmuck/mcwire/internal/protocol/frame"
	"github.com/danmuck/mcwire/internal/protocol/packet"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func handshakeCmd(c *cli) *cobra.Command {
	var (
		address  string
		port     uint16
		protocol int32
		next     string
	)

	cmd := &cobra.Command{
		Use:   "handshake",
		Short: "Print the hex frame of a handshake packet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			intent, err := packet.ParseIntent(next)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("protocol") {
				protocol = c.cfg.ProtocolVersion
			}
			return writeFrameHex(cmd, c, &packet.Handshake{
				ProtocolVersion: protocol,
				ServerAddress:   address,
				ServerPort:      port,
				NextState:       intent,
			})
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "localhost", "server address")
	cmd.Flags().Uint16VarP(&port, "port", "p", 25565, "server port")
	cmd.Flags().Int32Var(&protocol, "protocol", 0, "protocol version (default from config)")
	cmd.Flags().StringVarP(&next, "next", "n", "status", "next state (status|login|transfer)")

	return cmd
}

func loginStartCmd(c *cli) *cobra.Command {
	var name, id string

	cmd := &cobra.Command{
		Use:   "login-start",
		Short: "Print the hex frame of a login start packet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &packet.LoginStart{Name: name}
			if id != "" {
				u, err := uuid.Parse(id)
				if err != nil {
					return fmt.Errorf("invalid uuid: %w", err)
				}
				p.UUID = u
			}
			return writeFrameHex(cmd, c, p)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "player name")
	cmd.Flags().StringVar(&id, "uuid", "", "player uuid (default all zero)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func writeFrameHex(cmd *cobra.Command, c *cli, p packet.Packet) error {
	reg := packet.Default()
	key, _ := reg.KeyOf(p)
	d, _ := reg.Lookup(key.State, key.Direction, key.ID)
	f, err := reg.EncodeFrame(p)
	observability.RecordPacket("encode", key.State.String(), key.Direction.String(), d.Name, err == nil)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := frame.WriteFrame(&buf, f, c.cfg.FrameLimits()); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(buf.Bytes()))
	return err
}
