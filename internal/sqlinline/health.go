package sqlinline

const QHealthPing = `--sql 3f1c9a52-7b0e-4d61-9a7f-5c2e8d4b6a10
select 1;
`
