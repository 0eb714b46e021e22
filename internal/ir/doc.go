// Package ir provides the foundational types for didargs.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal. This keeps the value and type
// representations free of circular dependencies.
//
// Key design constraints:
//   - Value is a sealed interface: every encoder/validator branch switches
//     exhaustively over Null, Text, Number, Bool, List, Map.
//   - Numbers carry their decimal literal text, never float64, so magnitudes
//     beyond 2^53 survive a JSON round trip intact.
//   - TypeExpr trees are immutable after construction; resolution produces
//     new trees rather than mutating old ones.
package ir
