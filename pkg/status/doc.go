/*
Package status tracks per-item transfer outcomes and run progress for wpmigrate.

	            +-------------+
	            |   Status    |
	            | (Tracking)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Items   |           |  Logs   |
	| (Outcomes)|           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Tracks each content item's outcome (transferred, skipped, failed)
- Records media attachment results per item
- Provides user-friendly progress reporting
- Keeps the run's running totals in one place

🔄 Flow:
1. Receives item outcomes from the transfer engine
2. Tracks outcome and media metadata per item
3. Reports progress as the run advances
4. Exposes the tracked items for the final summary

🤝 Interfaces:
- Reporter: Receives item outcomes and progress updates
- ItemFormatter: Formats outcome and progress messages

🔍 Example:

	tracker := status.New(&logger)

	// Item tracking
	tracker.TrackItem(ctx, ref, status.ItemInfo{Outcome: status.OutcomeTransferred})

	// Progress reporting
	tracker.StartOperation(ctx, total)
	tracker.UpdateProgress(ctx, processed)
	tracker.FinishOperation(ctx)
*/
package status
