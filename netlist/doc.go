// Package netlist models a flattened gate-level Verilog netlist on top of
// netslab tables.
//
// A Design owns a table of modules. Every Module owns four tables, one each
// for input ports, output ports, wires and gate instances, plus a name index
// per table. Elements refer to each other by name; the integer indices handed
// out by the tables are stable while an element is live and can key
// per-element side tables.
//
// The reader accepts the structural subset used by timing tools:
//
//	module simple ( inp1, inp2, out );
//	  input inp1, inp2;
//	  output out;
//	  wire n1;
//	  NAND2_X1 u1 ( .a(inp1), .b(inp2), .o(n1) );
//	  INV_X1   u2 ( .a(n1), .o(out) );
//	endmodule
//
// Connections must be named (.pin(net)). Behavioural constructs, buses and
// parameters are rejected with a *ParseError.
package netlist
