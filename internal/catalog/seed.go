package catalog

import "github.com/xvierd/startpage/internal/domain"

func shortcut(name, url string) domain.Link {
	return domain.Link{Name: name, URL: url, Kind: domain.KindShortcut}
}

func link(category, name, url, description string) domain.Link {
	return domain.Link{Name: name, URL: url, Category: category, Description: description, Kind: domain.KindLink}
}

// Seed returns the built-in catalog imported into an empty store. Categories
// match panel names so link panels can list their own entries.
func Seed() []domain.Link {
	return []domain.Link{
		shortcut("GitHub", "https://github.com"),
		shortcut("Etherscan", "https://etherscan.io"),
		shortcut("Hacker News", "https://news.ycombinator.com"),
		shortcut("Wikipedia", "https://wikipedia.org"),

		link("social", "Farcaster", "https://farcaster.xyz", "Decentralized social network"),
		link("social", "Mastodon", "https://joinmastodon.org", "Federated microblogging"),
		link("wallets", "MetaMask", "https://metamask.io", "Browser wallet"),
		link("wallets", "Rabby", "https://rabby.io", "Multi-chain wallet"),
		link("docs", "Ethereum Docs", "https://ethereum.org/developers/docs", "Protocol documentation"),
		link("docs", "Go Documentation", "https://go.dev/doc", "Language reference and guides"),
		link("gov", "Snapshot", "https://snapshot.box", "Off-chain governance voting"),
		link("gov", "Tally", "https://tally.xyz", "On-chain governance"),
		link("lens", "Hey", "https://hey.xyz", "Lens social client"),
		link("gameb", "Game B", "https://gameb.wiki", "Civilizational design wiki"),
		link("ipfs", "IPFS Docs", "https://docs.ipfs.tech", "Content-addressed storage"),
		link("ipfs", "web3.storage", "https://web3.storage", "Pinning service"),
		link("defi", "Uniswap", "https://app.uniswap.org", "Token swaps"),
		link("defi", "Aave", "https://app.aave.com", "Lending markets"),
		link("refi", "Gitcoin", "https://gitcoin.co", "Public goods funding"),
		link("refi", "Toucan", "https://toucan.earth", "Carbon markets"),
		link("networks", "Chainlist", "https://chainlist.org", "EVM network registry"),
		link("networks", "L2BEAT", "https://l2beat.com", "Layer 2 analytics"),
		link("modalvate", "Modalvate", "https://modalvate.com", "Project home"),
		link("music", "SomaFM", "https://somafm.com", "Listener-supported radio"),
		link("lexicon", "Wiktionary", "https://wiktionary.org", "Free dictionary"),
		link("prices", "CoinGecko", "https://www.coingecko.com", "Token prices and market data"),
		link("prices", "DefiLlama", "https://defillama.com", "TVL and protocol metrics"),
	}
}
