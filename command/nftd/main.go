// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/audit"
	"github.com/splyse/nftd/configuration"
	"github.com/splyse/nftd/fault"
	"github.com/splyse/nftd/host"
	"github.com/splyse/nftd/rpc"
	"github.com/splyse/nftd/storage"
	"github.com/splyse/nftd/token"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// set up the fault panic log
	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault initialise failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// start a profiling http server
	// this uses the default builtin HTTP handler
	// and is not associated with the normal ClientRPC HTTPS server
	if "" != theConfiguration.ProfileHTTP {
		go func() {
			log.Warnf("profile listener on: %s", theConfiguration.ProfileHTTP)
			err := http.ListenAndServe(theConfiguration.ProfileHTTP, nil)
			exitwithstatus.Message("profile error: %s", err)
		}()
	}

	// already validated during configuration reading
	administrators, err := theConfiguration.Administrators()
	if nil != err {
		log.Criticalf("administrators error: %s", err)
		exitwithstatus.Message("administrators error: %s", err)
	}
	auxAdministrators, err := theConfiguration.AuxAdministrators()
	if nil != err {
		log.Criticalf("aux administrators error: %s", err)
		exitwithstatus.Message("aux administrators error: %s", err)
	}

	// general info
	log.Infof("database: %q", theConfiguration.Database)
	log.Infof("administrator: %s", administrators[0])

	// connection info
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "HttpsRPC", theConfiguration.HttpsRPC)

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// apply any registry identity overrides from the configuration
	err = applyLedgerSettings(&theConfiguration.Ledger)
	if nil != err {
		log.Criticalf("ledger settings error: %s", err)
		exitwithstatus.Message("ledger settings error: %s", err)
	}
	log.Infof("registry: %s (%s)", token.Name(), token.Symbol())

	// the registry acts under the identity of its primary
	// administrator when it is the source of a mint notification
	run := host.NewRuntime(administrators[0])

	// start the notification journal
	err = audit.Initialise()
	if nil != err {
		log.Criticalf("audit initialise error: %s", err)
		exitwithstatus.Message("audit initialise error: %s", err)
	}
	defer audit.Finalise()

	// start up the rpc background processes
	err = rpc.Initialise(&theConfiguration.ClientRPC, &theConfiguration.HttpsRPC, version, run, administrators, auxAdministrators)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}

// write any configured registry identity values to the settings pool
//
// blank values leave the stored (or default) settings untouched
func applyLedgerSettings(ledger *configuration.LedgerType) error {

	if "" == ledger.Name && "" == ledger.Symbol && "" == ledger.PostMintContract {
		return nil
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	if "" != ledger.Name {
		token.SetName(trx, ledger.Name)
	}
	if "" != ledger.Symbol {
		token.SetSymbol(trx, ledger.Symbol)
	}
	if "" != ledger.PostMintContract {
		contract, err := address.FromBase58(ledger.PostMintContract)
		if nil != err {
			trx.Abort()
			return err
		}
		token.SetPostMintContract(trx, contract)
	}

	return trx.Commit()
}
