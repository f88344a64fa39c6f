// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"

	"github.com/bitmark-inc/listener"
	"github.com/bitmark-inc/logger"

	"github.com/splyse/nftd/counter"
	"github.com/splyse/nftd/fault"
)

const (
	logName            = "client_rpc"
	minConnectionCount = 1
	minBandwidth       = 1000000 // 1Mbps
)

// RPCConfiguration - configuration file data for RPC setup
type RPCConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Bandwidth          float64  `gluamapper:"bandwidth" json:"bandwidth"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

// Listener - a started group of RPC listen addresses
type Listener interface {
	Serve() error
	Stop()
}

// the argument passed to the connection callback
type serverArgument struct {
	log    *logger.L
	server *rpc.Server
	count  *counter.Counter
}

type rpcListener struct {
	log           *logger.L
	multiListener *listener.MultiListener
	argument      *serverArgument
}

// NewRPC - validate the listen parameters and prepare the TLS
// listeners; Serve must be called to begin accepting connections
func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	count *counter.Counter,
	server *rpc.Server,
	tlsConfig *tls.Config,
	certificateFingerprint [32]byte,
) (Listener, error) {

	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}
	if configuration.Bandwidth <= minBandwidth { // fail if < 1Mbps
		log.Errorf("invalid %s bandwidth: %f bps < 1Mbps", logName, configuration.Bandwidth)
		return nil, fault.MissingParameters
	}
	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", logName)
		return nil, fault.MissingParameters
	}

	if err := validateListenAddresses(configuration.Listen, log); nil != err {
		return nil, err
	}

	log.Infof("%s: SHA3-256 fingerprint: %x", logName, certificateFingerprint)

	limiter := listener.NewLimiter(int(configuration.MaximumConnections))

	ml, err := listener.NewMultiListener(logName, configuration.Listen, tlsConfig, limiter, callback)
	if nil != err {
		log.Errorf("invalid %s listen addresses: %v", logName, configuration.Listen)
		return nil, err
	}

	r := &rpcListener{
		log:           log,
		multiListener: ml,
		argument: &serverArgument{
			log:    log,
			server: server,
			count:  count,
		},
	}
	return r, nil
}

func (r *rpcListener) Serve() error {
	r.log.Infof("starting RPC server: %v", r.multiListener)
	r.multiListener.Start(r.argument)
	return nil
}

func (r *rpcListener) Stop() {
	r.multiListener.Stop()
}

// per connection callback, one JSON RPC session per connection
func callback(conn io.ReadWriteCloser, argument interface{}) {
	serverArgument := argument.(*serverArgument)

	log := serverArgument.log
	log.Debug("connection opened")

	serverArgument.count.Increment()
	defer serverArgument.count.Decrement()

	codec := jsonrpc.NewServerCodec(conn)
	defer codec.Close()
	serverArgument.server.ServeCodec(codec)

	log.Debug("connection closed")
}

func validateListenAddresses(addresses []string, log *logger.L) error {
	for i, listen := range addresses {
		if '*' == listen[0] {
			// change "*:PORT" to "[::]:PORT"
			// on the assumption that this will listen on tcp4 and tcp6
			addresses[i] = "[::]" + ":" + strings.Split(listen, ":")[1]
			listen = "::"
		} else if '[' == listen[0] {
			listen = strings.Split(listen[1:], "]:")[0]
		} else {
			listen = strings.Split(listen, ":")[0]
		}

		if ip := net.ParseIP(listen); nil == ip {
			err := fault.InvalidIPAddress
			log.Errorf("rpc server listen error: %s", err)
			return err
		}
	}
	return nil
}
