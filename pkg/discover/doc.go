/*
Package discover finds the content item URLs a source site exposes.

	            +-------------+
	            |  Discover   |
	            |  (Index)    |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+------+          +-----+-----+
	| Strategies |          | Enumerate |
	| (Sitemaps) |          |  (API)    |
	+------------+          +-----------+

🎯 Purpose:
- Probes well-known sitemap locations for content URLs
- Walks one level of sitemap indexes into post sitemaps
- Filters discovered URLs to likely content paths
- Enumerates the posts API when no index yields anything

🔄 Flow:
1. IndexReader runs every registered strategy in order
2. Each strategy probes one location and parses what it finds
3. Results merge, dedupe, filter, and sort
4. Empty results tell the caller to fall back to API enumeration

🤝 Interfaces:
- Strategy: Probes one index location for candidate URLs
- Factory: Builds a strategy around the shared transport

🔍 Example:

	reader := discover.NewIndexReader(client, matcher)
	urls, err := reader.Discover(ctx, "https://src.example.com")
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		// fall back to API enumeration
	}
*/
package discover
