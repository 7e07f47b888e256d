package services

import (
	"errors"

	"sakubun/models"
)

// ErrInvalidDifficulty is returned when a request names a tier the catalog
// does not know about.
var ErrInvalidDifficulty = errors.New("invalid difficulty level")

// CatalogEntry is one practice sentence with its vocabulary hints.
type CatalogEntry struct {
	Sentence string
	Hints    []string
}

// ReferenceEntry holds the known-good translation and related phrases for a
// catalog sentence. The fallback evaluator reads this table when the Gemini
// call cannot be used.
type ReferenceEntry struct {
	Translation    string
	SimilarPhrases []string
}

var catalog = map[models.Difficulty][]CatalogEntry{
	models.DifficultyToeic: {
		{Sentence: "会議は午後3時に開始される予定です。", Hints: []string{"meeting", "be scheduled to"}},
		{Sentence: "新製品の売上は予想を上回りました。", Hints: []string{"sales", "exceed expectations"}},
		{Sentence: "請求書は月末までにお支払いください。", Hints: []string{"invoice", "by the end of the month"}},
		{Sentence: "工場の生産能力を20%増強する計画があります。", Hints: []string{"production capacity", "increase by 20%"}},
		{Sentence: "お客様からの苦情には迅速に対応しなければなりません。", Hints: []string{"complaint", "promptly"}},
		{Sentence: "この契約書の条件を慎重に確認してください。", Hints: []string{"contract", "terms", "carefully"}},
		{Sentence: "出張の経費は経理部に提出してください。", Hints: []string{"business trip", "expenses", "accounting department"}},
		{Sentence: "会社は来年度の予算を削減することを決定しました。", Hints: []string{"budget", "reduce", "fiscal year"}},
	},
	models.DifficultyMiddleSchool: {
		{Sentence: "私は毎朝7時に起きます。", Hints: []string{"every morning", "get up"}},
		{Sentence: "彼女は公園で犬と遊んでいます。", Hints: []string{"park", "play with"}},
		{Sentence: "昨日、友達と映画を見ました。", Hints: []string{"yesterday", "movie"}},
		{Sentence: "この本はあの本より面白いです。", Hints: []string{"more interesting than"}},
		{Sentence: "明日は雨が降るでしょう。", Hints: []string{"it will rain", "tomorrow"}},
		{Sentence: "私の兄は東京に住んでいます。", Hints: []string{"brother", "live in"}},
		{Sentence: "彼は野球をするのが好きです。", Hints: []string{"like -ing", "baseball"}},
		{Sentence: "英語を勉強することは大切です。", Hints: []string{"it is important to"}},
	},
	models.DifficultyHighSchool: {
		{Sentence: "もし時間があれば、その博物館を訪れたいです。", Hints: []string{"if I had time", "museum"}},
		{Sentence: "彼が言ったことは本当だと判明しました。", Hints: []string{"turn out", "what he said"}},
		{Sentence: "環境を守るために、私たちにできることはたくさんあります。", Hints: []string{"protect the environment", "there are many things"}},
		{Sentence: "その問題は思ったよりも複雑でした。", Hints: []string{"more complicated than expected"}},
		{Sentence: "彼女は疲れていたにもかかわらず、宿題を終わらせました。", Hints: []string{"although", "finish one's homework"}},
		{Sentence: "科学技術の発展は私たちの生活を大きく変えました。", Hints: []string{"development of technology", "change greatly"}},
		{Sentence: "外国語を学ぶことで視野が広がります。", Hints: []string{"broaden one's horizons", "foreign language"}},
		{Sentence: "彼は若い頃、海外で働いていたそうです。", Hints: []string{"I hear that", "work abroad"}},
	},
	models.DifficultyBasicVerbs: {
		{Sentence: "彼はドアを開けました。", Hints: []string{"open"}},
		{Sentence: "私は手紙を書きます。", Hints: []string{"write"}},
		{Sentence: "彼女は水を飲みました。", Hints: []string{"drink"}},
		{Sentence: "私たちは駅まで歩きました。", Hints: []string{"walk to"}},
		{Sentence: "彼は新しい車を買いました。", Hints: []string{"buy"}},
		{Sentence: "私は毎日音楽を聞きます。", Hints: []string{"listen to"}},
		{Sentence: "彼女は窓を閉めました。", Hints: []string{"close"}},
		{Sentence: "子供たちは川で泳ぎます。", Hints: []string{"swim"}},
	},
	models.DifficultyBusinessEmail: {
		{Sentence: "お世話になっております。株式会社田中の佐藤です。", Hints: []string{"Thank you for your continued support"}},
		{Sentence: "添付ファイルをご確認いただけますでしょうか。", Hints: []string{"attached file", "Could you please check"}},
		{Sentence: "ご返信をお待ちしております。", Hints: []string{"look forward to your reply"}},
		{Sentence: "会議の日程を変更させていただきたく存じます。", Hints: []string{"reschedule", "I would like to"}},
		{Sentence: "ご不明な点がございましたら、お気軽にお問い合わせください。", Hints: []string{"if you have any questions", "feel free to"}},
		{Sentence: "本日はお忙しい中、お時間をいただきありがとうございました。", Hints: []string{"thank you for taking the time"}},
		{Sentence: "納期について再度ご相談させてください。", Hints: []string{"delivery date", "discuss again"}},
		{Sentence: "来週の打ち合わせの件でご連絡いたしました。", Hints: []string{"I am writing regarding", "next week's meeting"}},
	},
	models.DifficultySimulation: {
		{Sentence: "すみません、駅までの道を教えていただけますか。", Hints: []string{"Could you tell me the way to"}},
		{Sentence: "このシャツの色違いはありますか。", Hints: []string{"Do you have this in another color"}},
		{Sentence: "窓側の席をお願いできますか。", Hints: []string{"window seat", "Could I have"}},
		{Sentence: "予約をキャンセルしたいのですが。", Hints: []string{"cancel my reservation"}},
		{Sentence: "おすすめの料理は何ですか。", Hints: []string{"What do you recommend"}},
		{Sentence: "ホテルまでタクシーでどのくらいかかりますか。", Hints: []string{"How long does it take", "by taxi"}},
		{Sentence: "両替はどこでできますか。", Hints: []string{"exchange money", "Where can I"}},
		{Sentence: "この近くに薬局はありますか。", Hints: []string{"Is there a pharmacy near here"}},
	},
}

// referenceTable carries known translations for a subset of catalog
// sentences. Sentences missing here fall back to generic placeholders.
var referenceTable = map[string]ReferenceEntry{
	"会議は午後3時に開始される予定です。": {
		Translation:    "The meeting is scheduled to start at 3 p.m.",
		SimilarPhrases: []string{"The meeting will begin at 3 in the afternoon.", "The conference is set to start at 3 p.m."},
	},
	"新製品の売上は予想を上回りました。": {
		Translation:    "Sales of the new product exceeded expectations.",
		SimilarPhrases: []string{"The new product sold better than expected.", "New product sales surpassed our forecast."},
	},
	"私は毎朝7時に起きます。": {
		Translation:    "I get up at seven every morning.",
		SimilarPhrases: []string{"I wake up at 7 a.m. every day.", "Every morning I get up at seven."},
	},
	"昨日、友達と映画を見ました。": {
		Translation:    "I watched a movie with my friend yesterday.",
		SimilarPhrases: []string{"Yesterday I saw a film with a friend.", "I went to see a movie with my friend yesterday."},
	},
	"もし時間があれば、その博物館を訪れたいです。": {
		Translation:    "If I had time, I would like to visit that museum.",
		SimilarPhrases: []string{"I'd love to visit the museum if I have time.", "Given the time, I would visit that museum."},
	},
	"彼はドアを開けました。": {
		Translation:    "He opened the door.",
		SimilarPhrases: []string{"He pushed the door open.", "The door was opened by him."},
	},
	"添付ファイルをご確認いただけますでしょうか。": {
		Translation:    "Could you please check the attached file?",
		SimilarPhrases: []string{"Please find the attached file.", "I would appreciate it if you could review the attachment."},
	},
	"すみません、駅までの道を教えていただけますか。": {
		Translation:    "Excuse me, could you tell me the way to the station?",
		SimilarPhrases: []string{"Excuse me, how do I get to the station?", "Could you show me the way to the station, please?"},
	},
}

// CatalogSentences returns the sentence list for a difficulty.
func CatalogSentences(difficulty models.Difficulty) ([]CatalogEntry, error) {
	entries, ok := catalog[difficulty]
	if !ok {
		return nil, ErrInvalidDifficulty
	}
	return entries, nil
}

// LookupReference returns the reference entry for a sentence, if one exists.
func LookupReference(sentence string) (ReferenceEntry, bool) {
	entry, ok := referenceTable[sentence]
	return entry, ok
}
