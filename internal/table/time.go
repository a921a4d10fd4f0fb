package table

import "os"

// statTimestamp converts a file's modification time into the real-valued
// timestamp stored in Marks.
func statTimestamp(fi os.FileInfo) float64 {
	mt := fi.ModTime()
	return float64(mt.Unix()) + float64(mt.Nanosecond())/1e9
}
