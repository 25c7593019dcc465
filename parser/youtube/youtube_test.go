package youtube

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const channelID = "UC_x5XG1OV2P6uZZ5FSM9Ttw"

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		page   []byte
		wantID string
	}{
		{
			name:   "meta tag",
			page:   []byte(`<meta property="og:url" content="https://www.youtube.com/channel/UC_x5XG1OV2P6uZZ5FSM9Ttw">`),
			wantID: channelID,
		},
		{
			name:   "script tag",
			page:   []byte(`<script>var ytInitialData = {"channel_id":"UC_x5XG1OV2P6uZZ5FSM9Ttw"};</script>`),
			wantID: channelID,
		},
		{
			name: "meta tag wins over scripts",
			page: []byte(`<html><head>
<meta property="og:url" content="https://www.youtube.com/channel/UCmetaMetaMeta">
</head><body>
<script>{"channel_id":"UCscriptScript"}</script>
</body></html>`),
			wantID: "UCmetaMetaMeta",
		},
		{
			name: "meta tag without channel path falls back to scripts",
			page: []byte(`<html><head>
<meta property="og:url" content="https://www.youtube.com/@GoogleDevelopers">
</head><body>
<script>{"channel_id":"UC_x5XG1OV2P6uZZ5FSM9Ttw"}</script>
</body></html>`),
			wantID: channelID,
		},
		{
			name: "meta tag without content falls back to scripts",
			page: []byte(`<meta property="og:url">
<script>{"channel_id":"UC_x5XG1OV2P6uZZ5FSM9Ttw"}</script>`),
			wantID: channelID,
		},
		{
			name: "first matching script in document order",
			page: []byte(`<script>var unrelated = 1;</script>
<script>{"channel_id":"UCfirstFirst"}</script>
<script>{"channel_id":"UCsecondSecond"}</script>`),
			wantID: "UCfirstFirst",
		},
		{
			name:   "id stops at characters outside the allowed set",
			page:   []byte(`<meta property="og:url" content="https://www.youtube.com/channel/UCabc-_9?feature=x">`),
			wantID: "UCabc-_9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Extract(tt.page)

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestExtract_NotFound(t *testing.T) {
	tests := []struct {
		name string
		page []byte
	}{
		{name: "no markers", page: []byte("<html><head></head><body>No channel ID here</body></html>")},
		{name: "empty page", page: []byte{}},
		{name: "absent page", page: nil},
		{name: "channel_id outside script", page: []byte(`<div>{"channel_id":"UC_x5XG1OV2P6uZZ5FSM9Ttw"}</div>`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Extract(tt.page)

			assert.True(t, errors.Is(err, ErrChannelNotFound))
			assert.Empty(t, id)
		})
	}
}

func TestFeedURL(t *testing.T) {
	url, err := FeedURL(channelID)

	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/feeds/videos.xml?channel_id=UC_x5XG1OV2P6uZZ5FSM9Ttw", url)
}

func TestFeedURL_Empty(t *testing.T) {
	url, err := FeedURL("")

	assert.True(t, errors.Is(err, ErrEmptyChannelID))
	assert.Empty(t, url)
}
