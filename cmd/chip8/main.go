// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/ezrec/chip8/config"
	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/host"
	"github.com/ezrec/chip8/io"
	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	ErrProgramExclusive = errors.New(f("-c and -r are exclusive"))
	ErrProgramMissing   = errors.New(f("one of -c or -r is required"))
)

// options are the command line settings that are not in the config file.
type options struct {
	compile string
	rom     string
	save    string
	list    bool
	dump    bool
	verbose bool
}

func main() {
	var opts options
	var configPath string

	cfg := config.Default()

	flag.StringVar(&opts.compile, "c", "", ".asm file to compile")
	flag.StringVar(&opts.rom, "r", "", "ROM image to load")
	flag.StringVar(&opts.save, "s", "", "Save the program image to this file, do not execute")
	flag.BoolVar(&opts.list, "l", false, "List the program disassembly, do not execute")
	flag.StringVar(&configPath, "config", "", "TOML configuration file")
	flag.BoolVar(&opts.dump, "dump", false, "Print the effective configuration, do not execute")
	flag.Float64Var(&cfg.Speed, "speed", cfg.Speed, "Multiplier of the 60Hz tick rate")
	flag.IntVar(&cfg.Scale, "scale", cfg.Scale, "Window pixels per display pixel")
	flag.BoolVar(&cfg.Terminal, "t", cfg.Terminal, "Use the terminal frontend")
	flag.BoolVar(&cfg.Mute, "q", cfg.Mute, "Quiet, no beeper")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(configPath) != 0 {
		loaded, err := config.Load(os.DirFS(filepath.Dir(configPath)), filepath.Base(configPath))
		if err != nil {
			log.Fatal(err)
		}
		// Flags given on the command line win over the file.
		flag.Visit(func(fl *flag.Flag) {
			switch fl.Name {
			case "speed":
				loaded.Speed = cfg.Speed
			case "scale":
				loaded.Scale = cfg.Scale
			case "t":
				loaded.Terminal = cfg.Terminal
			case "q":
				loaded.Mute = cfg.Mute
			}
		})
		cfg = loaded
	}

	err := cfg.Validate()
	if err != nil {
		log.Fatal(err)
	}

	if opts.dump {
		err = cfg.Write(os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	err = run(&opts, cfg)
	if err != nil {
		log.Fatal(err)
	}
}

// program assembles or loads the program named by the options.
func program(opts *options, emu *emulator.Emulator) (prog *cpu.Program, err error) {
	switch {
	case len(opts.compile) != 0 && len(opts.rom) != 0:
		err = ErrProgramExclusive
	case len(opts.compile) != 0:
		var inf *os.File
		inf, err = os.Open(opts.compile)
		if err != nil {
			return
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: opts.verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Printf("%v: assembly failed", opts.compile)
		}
	case len(opts.rom) != 0:
		var rom []byte
		rom, err = io.LoadRom(os.DirFS(filepath.Dir(opts.rom)), filepath.Base(opts.rom))
		if err != nil {
			return
		}
		prog = cpu.NewProgram(rom)
	default:
		err = ErrProgramMissing
	}

	return
}

func run(opts *options, cfg *config.Config) (err error) {
	emu := emulator.NewEmulator()
	emu.Verbose = opts.verbose
	emu.Speed = cfg.Speed

	emu.Program, err = program(opts, emu)
	if err != nil {
		return
	}

	if opts.list {
		for address, ins := range emu.Program.Codes() {
			fmt.Printf("%03x: %04x  %v\n", address, ins.Code, ins)
		}
		return
	}

	if len(opts.save) != 0 {
		err = os.WriteFile(opts.save, emu.Program.Binary(), 0o644)
		return
	}

	err = emu.Reset()
	if err != nil {
		return
	}

	if !cfg.Mute {
		beeper, berr := host.NewBeeper(cfg.Tone, host.BEEP_DURATION)
		if berr != nil {
			log.Printf("audio disabled: %v", berr)
		} else {
			defer beeper.Close()
			emu.Audio = beeper
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Terminal {
		err = runTerminal(ctx, emu, cfg)
	} else {
		err = runWindow(ctx, emu, cfg)
	}

	return
}

func runTerminal(ctx context.Context, emu *emulator.Emulator, cfg *config.Config) (err error) {
	tm, err := host.NewTerminal(cfg.Keymap())
	if err != nil {
		return
	}

	err = tm.Start()
	if err != nil {
		return
	}
	defer tm.Stop()

	emu.Display = tm
	emu.Input = tm

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-tm.Done()
		cancel()
	}()

	err = emu.Run(ctx)

	return
}

func runWindow(ctx context.Context, emu *emulator.Emulator, cfg *config.Config) (err error) {
	palette, err := cfg.Palette()
	if err != nil {
		return
	}

	win, err := host.NewWindow("chip8", cfg.Scale, palette, cfg.Keymap())
	if err != nil {
		return
	}

	emu.Display = win
	emu.Input = win

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- emu.Run(ctx)
		win.Close()
	}()
	go func() {
		<-win.Done()
		cancel()
	}()

	// The window owns the main goroutine until it closes.
	err = win.Run()
	cancel()

	runErr := <-done
	if err == nil {
		err = runErr
	}

	return
}
