// Package netdiagram describes the fixed network diagram and its visual state.
//
//   - [Topology]: layer sizes with full connectivity between adjacent layers
//   - [Diagram]: per-node and per-edge [Visual] state, addressed by layer and index
//   - [Palette]: fill, stroke and opacity for every visual state
//   - [Layout]: static node geometry used by renderers
package netdiagram
