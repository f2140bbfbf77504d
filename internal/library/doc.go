// Package library owns every filesystem interaction under the managed
// root directory.
//
// Manager provides create/save/read/move/delete for track files and
// prunes now-empty ancestor directories after moves and deletes. The
// configured root is a hard boundary: pruning never removes it and
// operations are assumed to target paths already rooted under it by the
// path builder.
//
// No other component in the core touches the tree under the root
// directly.
package library
