// Package parallel provides a work-stealing goroutine pool for
// dispatching independent per-line work across an rleimage Volume's
// (N-1)-D grid.
//
// Adapted from gg/internal/parallel, which pools goroutines over
// 64x64 pixel tiles for rasterization. Here the unit of work is a
// whole scanline, never a sub-line tile: at most one worker may ever
// touch a given Line, and that rule is easiest to keep correct by
// making "one dispatched item" and "one whole line" the same concept,
// rather than re-deriving it from pixel-rectangle tiles the way gg's
// TileGrid does for 2-D rendering. TileGrid, Tile, the dirty-rectangle
// tracking, and the fire-and-forget/single-item/queue-depth corners of
// gg's pool API (ExecuteAsync, Submit, QueuedWork, IsRunning, Workers)
// were not kept: rleimage/roi only ever dispatches a batch of per-line
// jobs and waits for all of them, so only NewWorkerPool, ExecuteAll
// and Close carry their weight here.
package parallel
