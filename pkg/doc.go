// Package pkg provides the core libraries for Timelab timeline rendering.
//
// # Overview
//
// Timelab turns a flat list of timestamped events into a timeline figure
// with non-overlapping labels. The pkg directory is organized into three
// main areas:
//
//  1. Layout engine ([scale], [force], [renderer], [timeline])
//  2. Input and output ([events], [render/sink])
//  3. Orchestration ([pipeline], [cache])
//
// # Architecture
//
// The typical data flow through Timelab:
//
//	Event file (YAML/JSON)
//	         ↓
//	[events]   parse and normalize timestamps
//	         ↓
//	[timeline] size labels, project times onto the axis
//	         ↓
//	[force]    push overlapping labels apart in one dimension
//	         ↓
//	[renderer] assign layers and resolve on-canvas geometry
//	         ↓
//	[render/sink] emit SVG, TikZ, or JSON artifacts
//
// The [pipeline] package drives the whole flow and caches rendered
// artifacts through [cache]. Shared error codes live in [errors].
package pkg
