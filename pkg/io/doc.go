// Package io reads roadmap inputs and writes roadmap trees as JSON.
//
// # Input Format
//
// An input document carries the links fetched from the work tracker, the
// out-of-scope work items, the work items themselves, and optionally the
// team's backlog configuration:
//
//	{
//	  "links": [
//	    {"target": {"id": 1}},
//	    {"source": {"id": 1}, "target": {"id": 2}}
//	  ],
//	  "outOfScope": [7],
//	  "workItems": [
//	    {"id": 1, "type": "Epic", "title": "Checkout"},
//	    {"id": 2, "type": "Feature", "title": "Payments"}
//	  ],
//	  "backlog": {
//	    "requirementBacklog": {"name": "Stories", "rank": 2, "workItemTypes": [{"name": "User Story"}]},
//	    "portfolioBacklogs": [{"name": "Epics", "rank": 0, "workItemTypes": [{"name": "Epic"}]}]
//	  }
//	}
//
// A link without a source hangs its target under the virtual root.
// Unknown fields are rejected so that typos in hand-written inputs surface
// early.
//
// # Tree Format
//
// Trees are written with both directions of the parent relation:
//
//	{
//	  "parentToChildrenMap": {"0": [1], "1": [2], "2": []},
//	  "childToParentMap": {"1": 0, "2": 1}
//	}
//
// Use [ReadInput] and [WriteTree] with any reader or writer, or the
// file-based wrappers [ImportInput] and [ExportTree]. [ReadTree] decodes a
// previously written tree.
package io
