// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package netlist implements the Netlist Framework consumed by the DALS
// engine: a directed acyclic graph of typed nodes (primary inputs, primary
// outputs, logic gates and constants), BENCH/BLIF ingest and egress, and
// the mutation primitives (AddFanin, Replace, CreateInverter, Delete) that
// the alc package uses to apply and undo approximate local changes.
//
// Node identity is a stable, monotonically allocated integer (ID). Fanins
// are ordered and may be complemented; fanouts are derived automatically
// whenever fanins change, so callers never maintain them by hand.
package netlist
