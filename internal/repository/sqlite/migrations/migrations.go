package migrations

// Migration is one ordered schema-change step. Up is required; Down is
// optional and only used when rolling back. Step N assumes the schema state
// left by steps 1..N-1, so the list must never be reordered or pruned; it is
// append only.
type Migration struct {
	Up   string
	Down string
}

// Steps is the shipped schema history. The Users table gained a unique
// external Number mid-history; existing rows are backfilled with a random
// token so the UNIQUE constraint holds.
var Steps = []Migration{
	{Up: `CREATE TABLE IF NOT EXISTS Users (Id INTEGER PRIMARY KEY, Name TEXT, CreationDate DATE);`},
	{Up: `CREATE TABLE IF NOT EXISTS NewUsers (Id INTEGER PRIMARY KEY, Name TEXT, Number TEXT UNIQUE, CreationDate DATE);`},
	{Up: `INSERT INTO NewUsers (Id, Name, Number, CreationDate)
		SELECT Id, Name, lower(hex(randomblob(6))), CreationDate FROM Users;`},
	{Up: `DROP TABLE Users;`},
	{Up: `ALTER TABLE NewUsers RENAME TO Users;`},
	{Up: `CREATE TABLE IF NOT EXISTS Accounts (
		Id INTEGER PRIMARY KEY,
		Name TEXT,
		UserId INTEGER,
		Count DECIMAL,
		FOREIGN KEY (UserId) REFERENCES Users (Id)
	);`},
	{Up: `PRAGMA foreign_keys=ON;`},
	{Up: `ALTER TABLE Accounts RENAME COLUMN Count TO MoneyCount;`},
	{Up: `ALTER TABLE Accounts ADD COLUMN CreationDate DATE;`},
	{Up: `CREATE TABLE IF NOT EXISTS Transactions (
		Id TEXT PRIMARY KEY,
		Amount DECIMAL,
		Description TEXT,
		UserId INTEGER,
		AccountId INTEGER,
		PaymentType INTEGER,
		CreationDate TEXT,
		FOREIGN KEY (UserId) REFERENCES Users (Id),
		FOREIGN KEY (AccountId) REFERENCES Accounts (Id)
	);`},
	{Up: `ALTER TABLE Transactions ADD COLUMN PaymentTarget TEXT;`},
	{
		Up:   `CREATE INDEX IF NOT EXISTS user_name ON Users (Name);`,
		Down: `DROP INDEX user_name;`,
	},
}
