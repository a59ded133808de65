// Package sink serializes computed timeline layouts to output formats.
//
// Three sinks are provided:
//
//   - [RenderSVG]: a self-contained SVG document with the axis, tick marks,
//     anchor dots, connector links and label boxes.
//   - [RenderTeX]: a standalone TikZ document for LaTeX pipelines, driven by
//     the timeline's LaTeX option block.
//   - [RenderJSON]: the resolved geometry as data, for callers that draw
//     with their own toolkit.
//
// All sinks consume the same inputs: the timeline (for configuration, the
// scale and style channels) and the layout result produced by
// timeline.Compute. Sinks never recompute geometry; they only translate the
// canonical layout frame into each format's coordinate conventions.
package sink
