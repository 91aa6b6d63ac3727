// Package trash moves files into the freedesktop.org home trash so deletions
// stay recoverable from the desktop's file manager.
//
// Files land in $XDG_DATA_HOME/Trash/files with a matching .trashinfo record
// in Trash/info. Sources on another filesystem are copied, verified, and then
// removed.
package trash
