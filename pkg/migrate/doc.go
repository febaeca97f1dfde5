/*
Package migrate moves published content from one WordPress site to another.

	            +-------------+
	            |  Migrator   |
	            | (Two-phase) |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|  Resolve  |           | Transfer|
	| (URL→Post)|           | (Engine)|
	+-----------+           +---------+

🎯 Purpose:
- Decides between sitemap discovery and API enumeration, never both
- Resolves discovered URLs to full content records
- Transfers each item: create post, then carry featured media
- Paces requests so shared hosts never see a burst

🔄 Flow:
1. Phase one builds the work list (index URLs or API pages)
2. Phase two walks the list sequentially with a delay between items
3. Each item: resolve → create → media, with media failures non-fatal
4. The run ends with a summary of outcomes

⚡ Key Responsibilities:
- Mode selection (sitemap vs api) with strict exclusivity
- Per-item outcome bookkeeping (transferred, skipped, failed)
- Safe media carry-over that never takes down a created post
- Honoring cancellation between items and during delays

🔍 Example:

	m := migrate.New(cfg, client, reporter)
	summary, err := m.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%d transferred, %d failed\n", summary.Transferred, summary.Failed)
*/
package migrate
