// Package edit turns editing requests into text edits that keep the
// surrounding markup well formed.
//
// Every operator works on a region: the selection widened to the ranges it
// touches. The region is decomposed into content pieces (plain text, added,
// deleted and kept content), each belonging to a group that stands for an
// existing range or a span created by the edit. The operator rewrites the
// pieces and the serializer rebuilds the markup of the region:
//
//   - consecutive pieces of one group form one span;
//   - deleted followed by added content of one group is a Substitution;
//   - spans emptied by the edit disappear, except comments.
//
// The difference between the old and the new region is returned as a
// single trimmed edit together with the resulting selection.
package edit
