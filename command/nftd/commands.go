// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/splyse/nftd/configuration"
	"github.com/splyse/nftd/fault"
	"github.com/splyse/nftd/host"
	"github.com/splyse/nftd/util"
)

const (
	identityPublicKeyFilename  = "identity.public"
	identityPrivateKeyFilename = "identity.private"

	rpcCertificateFilename = "rpc.crt"
	rpcPrivateKeyFilename  = "rpc.key"
)

// setup command handler
//
// commands that run to create key and certificate files; these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-identity", "id":
		publicKeyFilename := getFilenameWithDirectory(arguments, identityPublicKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, identityPrivateKeyFilename)

		err := makeIdentity(publicKeyFilename, privateKeyFilename)
		if nil != err {
			fmt.Printf("generate identity: %q and %q error: %s\n", privateKeyFilename, publicKeyFilename, err)
			exitwithstatus.Exit(1)
		}

	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg":
		return false // defer processing until configuration is read

	case "version", "v":
		fmt.Printf("%s\n", version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                  (h)    - display this message\n\n")
		fmt.Printf("  version               (v)    - display version string\n\n")

		fmt.Printf("  gen-identity [DIR]    (id)   - create private key in: %q\n", "DIR/"+identityPrivateKeyFilename)
		fmt.Printf("                                 and the public key in: %q\n", "DIR/"+identityPublicKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR]    (rpc)  - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                 and the certificate in: %q\n", "DIR/"+rpcCertificateFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...]  - as above with extra hosts in the certificate\n")
		fmt.Printf("\n")

		fmt.Printf("  start                 (run)  - just run the program, same as no arguments\n")
		fmt.Printf("                                 for convenience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test           (cfg)  - just check the configuration file\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *configuration.Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default: // unknown commands fall through to normal startup
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// create a signing identity
//
// the private key file holds the hex seed, the public key file holds
// the hex public key and the derived ledger address
func makeIdentity(publicKeyFilename string, privateKeyFilename string) error {

	if util.EnsureFileExists(privateKeyFilename) {
		return fault.KeyFileExists
	}

	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return err
	}

	privateData := "PRIVATE:" + hex.EncodeToString(privateKey) + "\n"
	if err := os.WriteFile(privateKeyFilename, []byte(privateData), 0600); nil != err {
		return err
	}

	account := host.AddressFromPublicKey(publicKey)
	publicData := "PUBLIC:" + hex.EncodeToString(publicKey) + "\n" +
		"ADDRESS:" + account.String() + "\n"
	if err := os.WriteFile(publicKeyFilename, []byte(publicData), 0644); nil != err {
		os.Remove(privateKeyFilename)
		return err
	}

	fmt.Printf("generated private key: %q and public key: %q\n", privateKeyFilename, publicKeyFilename)
	fmt.Printf("address: %s\n", account)
	return nil
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
