/*
Package config loads and validates wpmigrate run configuration.

	            +-------------+
	            |   Config    |
	            |  (Loading)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |           |           |
	+-----+----+ +----+----+ +----+----+
	|   YAML   | |   HCL   | |  JSON   |
	| (Parser) | | (Parser)| | (Parser)|
	+----------+ +---------+ +---------+

🎯 Purpose:
- Loads configuration from YAML, HCL, or JSON files
- Validates site URLs and destination credentials
- Fills credentials from the environment when the file omits them
- Normalizes base URLs and parses delay durations

🔄 Flow:
1. Load reads the file and picks a parser by extension
2. The parser decodes the raw bytes into the Config model
3. Environment fallbacks fill missing credentials
4. Validate normalizes URLs, patterns, and delays

🤝 Interfaces:
- Parser: Decodes one config format into the shared model

🔍 Example:

	cfg, err := config.Load(ctx, ".wpmigrate.yaml")
	if err != nil {
		return err
	}

	fmt.Println(cfg.String()) // https://src.example.com -> https://dst.example.com
*/
package config
