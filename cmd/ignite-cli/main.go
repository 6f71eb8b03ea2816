/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Command ignite-cli is a thin interactive shell over the client: it loads
// connection parameters from flags/env/file with viper and exposes
// put/get/scan as cobra subcommands.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	ignite "github.com/gridgain/ignite-go-client"
	"github.com/gridgain/ignite-go-client/igconfig"
	"github.com/gridgain/ignite-go-client/logger"
	liblvl "github.com/gridgain/ignite-go-client/logger/level"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	host    string
	port    int
	cache   string
)

func loadConfig() *igconfig.Config {
	v := viper.New()
	v.SetEnvPrefix("IGNITE")
	v.AutomaticEnv()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		_ = v.ReadInConfig()
	}

	h := host
	if v.IsSet("host") {
		h = v.GetString("host")
	}
	p := port
	if v.IsSet("port") {
		p = v.GetInt("port")
	}

	return &igconfig.Config{
		Seeds: []igconfig.Seed{{Host: h, Port: p}},
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ignite-cli",
		Short: "Minimal command-line client for an Ignite/GridGain thin-client cluster",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml/json/toml)")
	root.PersistentFlags().StringVar(&host, "host", "127.0.0.1", "seed node host")
	root.PersistentFlags().IntVar(&port, "port", 10800, "seed node port")
	root.PersistentFlags().StringVar(&cache, "cache", "default", "cache name")

	root.AddCommand(putCmd(), getCmd(), scanCmd())
	return root
}

func putCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "put KEY VALUE",
		Short: "Put a string key/value pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, e := ignite.Connect(loadConfig())
			if e != nil {
				return e
			}
			defer client.Close()
			if e := client.CacheByName(cache).Put(args[0], args[1]); e != nil {
				return e
			}
			return nil
		},
	}
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Get a string key's value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, e := ignite.Connect(loadConfig())
			if e != nil {
				return e
			}
			defer client.Close()
			v, e := client.CacheByName(cache).Get(args[0])
			if e != nil {
				return e
			}
			fmt.Println(v)
			return nil
		},
	}
}

func scanCmd() *cobra.Command {
	var pageSize int
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan every entry in the cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, e := ignite.Connect(loadConfig())
			if e != nil {
				return e
			}
			defer client.Close()

			cur, e := client.CacheByName(cache).Scan(-1, int32(pageSize), false)
			if e != nil {
				return e
			}
			defer cur.Close()

			for {
				pair, ok, e := cur.Next()
				if e != nil {
					return e
				}
				if !ok {
					return nil
				}
				fmt.Printf("%v = %v\n", pair[0], pair[1])
			}
		},
	}
	cmd.Flags().IntVar(&pageSize, "page-size", 1024, "server-side page size")
	return cmd
}

func main() {
	log := logger.New(context.Background())
	log.SetSPF13Level(liblvl.InfoLevel, nil) // route viper/cobra's own jww logging through ours

	if e := rootCmd().Execute(); e != nil {
		fmt.Fprintln(os.Stderr, strings.TrimSpace(e.Error()))
		os.Exit(1)
	}
}
