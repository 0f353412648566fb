// Package markup models suggestion markup spans embedded in plain text.
//
// Five span kinds are recognized, each delimited by a 3-character opening
// and closing bracket:
//
//	Addition      {++text++}
//	Deletion      {--text--}
//	Substitution  {~~old~>new~~}
//	Highlight     {==text==}
//	Comment       {>>text<<}
//
// A span may carry a metadata block directly after its opening bracket,
// terminated by "@@":
//
//	{++{"author":"ana","time":1700000000}@@text++}
//
// Range values only store offsets; operations that need the characters of a
// span take the document text as a parameter. All operations are pure and
// treat positions outside of a range as a no-op rather than an error, so
// callers can probe speculative positions freely.
package markup
