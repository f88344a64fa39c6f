// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse the nftd Lua configuration file
//
// the configuration is an executable Lua script whose final expression
// is a table; this allows site configurations to compute values and
// read external files
package configuration

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/rpc"
	"github.com/splyse/nftd/rpc/listeners"
)

// basic defaults (directories and files are relative to the
// "data_directory" from the configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "nftd.key"
	defaultCertificateFile = "nftd.crt"

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "nft.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "nftd.log"
	defaultLogCount     = 10
	defaultLogSize      = 1024 * 1024

	defaultRPCClients   = 10
	defaultRPCBandwidth = 100000000 // 100Mbps
)

var defaultLogLevels = map[string]string{
	"main":            "info",
	logger.DefaultTag: "error",
}

// DatabaseType - where the ledger lives
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// LedgerType - token registry identity and administration
type LedgerType struct {
	Administrator     string   `gluamapper:"administrator" json:"administrator"`
	AuxAdministrators []string `gluamapper:"aux_administrators" json:"aux_administrators"`
	Name              string   `gluamapper:"name" json:"name"`
	Symbol            string   `gluamapper:"symbol" json:"symbol"`
	PostMintContract  string   `gluamapper:"post_mint_contract" json:"post_mint_contract"`
}

// Configuration - the full configuration tree
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	ProfileHTTP   string       `gluamapper:"profile_http" json:"profile_http"`
	Database      DatabaseType `gluamapper:"database" json:"database"`

	ClientRPC listeners.RPCConfiguration `gluamapper:"client_rpc" json:"client_rpc"`
	HttpsRPC  rpc.HTTPSConfiguration     `gluamapper:"https_rpc" json:"https_rpc"`
	Ledger    LedgerType                 `gluamapper:"ledger" json:"ledger"`
	Logging   logger.Configuration       `gluamapper:"logging" json:"logging"`
}

// GetConfiguration - read, decode and verify the configuration
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Bandwidth:          defaultRPCBandwidth,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		// default: share certificate with the normal RPC
		HttpsRPC: rpc.HTTPSConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// an administrator is mandatory, minting and registry
	// administration would otherwise be impossible
	if "" == options.Ledger.Administrator {
		return nil, fmt.Errorf("ledger administrator is not set")
	}
	if _, err := options.Administrators(); nil != err {
		return nil, err
	}
	if _, err := options.AuxAdministrators(); nil != err {
		return nil, err
	}
	if "" != options.Ledger.PostMintContract {
		if _, err := address.FromBase58(options.Ledger.PostMintContract); nil != err {
			return nil, fmt.Errorf("post_mint_contract: %q error: %s", options.Ledger.PostMintContract, err)
		}
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.HttpsRPC.Certificate,
		&options.HttpsRPC.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = ensureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain a path separator, then add the correct directory
	// prefix
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = ensureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("files: %q is not a plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = ensureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	return options, nil
}

// Administrators - the primary administrators; these hold the mint,
// uri, whitelist and registry configuration rights
func (configuration *Configuration) Administrators() ([]address.Address, error) {
	a, err := address.FromBase58(configuration.Ledger.Administrator)
	if nil != err {
		return nil, fmt.Errorf("administrator: %q error: %s", configuration.Ledger.Administrator, err)
	}
	return []address.Address{a}, nil
}

// AuxAdministrators - the separate auxiliary data role; may be empty,
// the primary administrators then hold that role as well
func (configuration *Configuration) AuxAdministrators() ([]address.Address, error) {
	admins := make([]address.Address, 0, len(configuration.Ledger.AuxAdministrators))
	for _, aux := range configuration.Ledger.AuxAdministrators {
		a, err := address.FromBase58(aux)
		if nil != err {
			return nil, fmt.Errorf("aux administrator: %q error: %s", aux, err)
		}
		admins = append(admins, a)
	}
	return admins, nil
}

// ensure the path is absolute
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
