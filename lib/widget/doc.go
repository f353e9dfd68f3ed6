// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package widget defines the declarative UI description pushed to
// native home-screen widgets, and its canonical form.
//
// A [Config] holds one layout tree per size family. Trees are built
// from [Element] values: containers ([VStack], [HStack], [ZStack],
// [Grid], [Container], [Link]) own ordered children, and leaves
// ([Text], [Image], [Progress], [Gauge], [Button], [Toggle],
// [Divider], [Spacer], [Date], [Chart], [List], [Shape], [Timer],
// [Canvas], [Label]) carry element-specific fields. Every element
// except spacer embeds a [Style].
//
// On the wire an element is a JSON object discriminated by its "type"
// member, with style members flattened beside the element's own.
// Canvas draw commands are discriminated by "draw". [ParseConfig]
// rejects unknown discriminators, missing required members, type
// mismatches, and enum values outside their set, reporting the path of
// the first failure. Unknown members are ignored.
//
// [Canonicalize] produces the byte form used for persistence and
// change detection: compact JSON with sorted keys and no null members.
// [ContentHash] fingerprints that form.
package widget
