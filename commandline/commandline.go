// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"flag"
	"fmt"
	"strconv"
)

var (
	config     string
	dumpPath   string
	exec       string
	grid       int
	sectorSize int
	seed       int
	things     int
	ticks      int

	developer = boolInt{false, 1}
)

// boolInt is a flag that can be given alone or with a number.
type boolInt struct {
	set bool
	num int
}

func (b *boolInt) IsBoolFlag() bool {
	// We can not support both "-flag" and "-flag 10"
	// This allows "-flag", and "-flag=10"
	// and also "-flag=true" and "-flag=false"
	// but not "-flag 10"
	return true
}

func (b *boolInt) Set(s string) error {
	v, err := strconv.ParseInt(s, 0, strconv.IntSize)
	if err != nil {
		v, err := strconv.ParseBool(s)
		b.set = v
		return err
	}
	b.set = v != 0
	b.num = int(v)
	return nil
}

func (b *boolInt) String() string {
	return fmt.Sprintf("Set: %v, Num: %v", b.set, b.num)
}

func init() {
	flag.StringVar(&config, "config", "", "YAML file with cvar values")
	flag.StringVar(&exec, "exec", "", "console commands to run, \"wait\" defers the rest by one tick")
	flag.StringVar(&dumpPath, "dump", "", "write a snapshot of the world to this file")

	flag.IntVar(&grid, "grid", 8, "number of sectors per side of the test level")
	flag.IntVar(&sectorSize, "sectorsize", 192, "side length of a sector")
	flag.IntVar(&seed, "seed", 1, "random seed")
	flag.IntVar(&things, "things", 64, "number of things to spawn")
	flag.IntVar(&ticks, "ticks", 350, "simulation ticks to run")

	flag.Var(&developer, "developer", "enable developer output, optional level")
}

func Config() string {
	return config
}

func Exec() string {
	return exec
}

func Dump() string {
	return dumpPath
}

func Grid() int {
	return grid
}

func SectorSize() int {
	return sectorSize
}

func Seed() int {
	return seed
}

func Things() int {
	return things
}

func Ticks() int {
	return ticks
}

func Developer() bool {
	return developer.set
}

func DeveloperLevel() int {
	return developer.num
}
